package plan

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// buildConstraints assembles the four constraint families. The families are
// additive and independent; order here only affects model row layout.
func buildConstraints(m mip.Model, b *params.Bundle, v *variables) error {
	if err := addBudgetConstraints(m, b, v); err != nil {
		return err
	}
	if err := addCoverageConstraints(m, b, v); err != nil {
		return err
	}
	if err := addInfrastructureConstraints(m, b, v); err != nil {
		return err
	}
	return addLogicalConstraints(m, b, v)
}

// portCost is the per-port installation cost at a station's current tier.
func portCost(b *params.Bundle, t network.ChargerType) float64 {
	if t == network.Level3 {
		return b.Config.Costs.PortL3
	}
	return b.Config.Costs.PortL2
}

// Budget family: total enhancement spend within budget, plus a cap on the
// number of upgrades per planning period.
func addBudgetConstraints(m mip.Model, b *params.Bundle, v *variables) error {
	spend := m.NewConstraint(
		mip.LessThanOrEqual,
		b.Config.Budget,
	)
	for _, s := range b.Upgradeable {
		u, err := v.upgradeVar(s)
		if err != nil {
			return err
		}
		spend.NewTerm(b.Config.Costs.Upgrade, u)
	}
	for _, s := range b.AllStations {
		p, err := v.newPortsVar(s)
		if err != nil {
			return err
		}
		spend.NewTerm(portCost(b, s.Type), p)
	}
	for _, c := range b.Candidates {
		ns, err := v.newStationVar(c)
		if err != nil {
			return err
		}
		spend.NewTerm(b.Config.Costs.NewStation, ns)
	}

	upgradeCap := m.NewConstraint(
		mip.LessThanOrEqual,
		float64(b.Config.MaxUpgradesPerPeriod),
	)
	for _, s := range b.Upgradeable {
		u, err := v.upgradeVar(s)
		if err != nil {
			return err
		}
		upgradeCap.NewTerm(1, u)
	}
	return nil
}

// Coverage family: population floor, single service per area, service gated
// on the serving station surviving (or being built), underserved definition,
// and the inter-Level-3 distance limit.
func addCoverageConstraints(m mip.Model, b *params.Bundle, v *variables) error {
	floor := m.NewConstraint(
		mip.GreaterThanOrEqual,
		b.Config.MinCoverageFraction*b.TotalPopulation,
	)
	for _, l := range v.links {
		floor.NewTerm(l.Area.Population, v.Covered.Get(l))
	}

	byArea := make(map[string][]serviceLink, len(b.Areas))
	for _, l := range v.links {
		byArea[l.Area.AreaID] = append(byArea[l.Area.AreaID], l)
	}

	for _, a := range b.Areas {
		links := byArea[a.AreaID]

		// An area's population counts once even with several stations in reach.
		single := m.NewConstraint(mip.LessThanOrEqual, 1)
		for _, l := range links {
			single.NewTerm(1, v.Covered.Get(l))
		}

		// Served or flagged underserved, never silently neither.
		served := m.NewConstraint(mip.GreaterThanOrEqual, 1)
		for _, l := range links {
			served.NewTerm(1, v.Covered.Get(l))
		}
		served.NewTerm(1, v.Underserved.Get(a))
	}

	for _, l := range v.links {
		if l.ToCandidate {
			c, ok := v.candidates[l.Server]
			if !ok {
				return &ModelBuildError{Collection: "covered", Index: l.ID(), Reason: "link references unknown candidate"}
			}
			// covered <= new_station
			gate := m.NewConstraint(mip.LessThanOrEqual, 0)
			gate.NewTerm(1, v.Covered.Get(l))
			gate.NewTerm(-1, v.NewStation.Get(c))
			continue
		}
		s, ok := v.stations[l.Server]
		if !ok {
			return &ModelBuildError{Collection: "covered", Index: l.ID(), Reason: "link references unknown station"}
		}
		// covered <= 1 - remove
		gate := m.NewConstraint(mip.LessThanOrEqual, 1)
		gate.NewTerm(1, v.Covered.Get(l))
		gate.NewTerm(1, v.Remove.Get(s))
	}

	for _, row := range l3DistancePairs(b) {
		pair := m.NewConstraint(mip.LessThanOrEqual, row.RHS)
		for _, id := range row.Vars {
			y, err := v.l3Indicator(id)
			if err != nil {
				return err
			}
			pair.NewTerm(row.KM, y)
		}
	}
	return nil
}

// l3PairRow is one linearized inter-Level-3 distance row:
// KM*y_1 [+ KM*y_2] <= RHS.
type l3PairRow struct {
	Vars []string
	KM   float64
	RHS  float64
}

// l3DistancePairs linearizes "if stations i and j both end up Level 3, their
// distance is at most MaxDistanceKM" as d*y_i + d*y_j <= maxD + d, which
// binds to d <= maxD exactly when both indicators are 1 and is slack
// otherwise. Fixed Level-3 stations fold in as constant 1 (shrinking the
// RHS); pairs already within the limit are vacuous and skipped, as are pairs
// of two fixed stations, which no decision can change.
func l3DistancePairs(b *params.Bundle) []l3PairRow {
	maxKM := b.Coverage.MaxDistanceKM

	type entity struct {
		id    string
		fixed bool
	}
	entities := make([]entity, 0, len(b.Upgradeable)+len(b.Candidates)+len(b.Level3))
	for _, s := range b.Upgradeable {
		entities = append(entities, entity{id: s.StationID})
	}
	for _, c := range b.Candidates {
		entities = append(entities, entity{id: c.SiteID})
	}
	for _, s := range b.Level3 {
		entities = append(entities, entity{id: s.StationID, fixed: true})
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].id < entities[j].id })

	var rows []l3PairRow
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			ei, ej := entities[i], entities[j]
			if ei.fixed && ej.fixed {
				continue
			}
			d := b.StationKM[ei.id][ej.id]
			if d <= maxKM {
				continue
			}
			switch {
			case ei.fixed:
				rows = append(rows, l3PairRow{Vars: []string{ej.id}, KM: d, RHS: maxKM})
			case ej.fixed:
				rows = append(rows, l3PairRow{Vars: []string{ei.id}, KM: d, RHS: maxKM})
			default:
				rows = append(rows, l3PairRow{Vars: []string{ei.id, ej.id}, KM: d, RHS: maxKM + d})
			}
		}
	}
	return rows
}

// Infrastructure family: per-station power draw within grid capacity, and
// per-area aggregate port floors. New ports at upgradeable stations draw at
// the Level-3 rate (conservative, keeps draw x upgrade linear); the uplift of
// existing ports on upgrade enters through the upgrade indicator.
func addInfrastructureConstraints(m mip.Model, b *params.Bundle, v *variables) error {
	rateL2 := b.Config.Costs.PowerPerPortL2
	rateL3 := b.Config.Costs.PowerPerPortL3

	for _, s := range b.AllStations {
		p, err := v.newPortsVar(s)
		if err != nil {
			return err
		}
		baseRate := rateL2
		newRate := rateL2
		if s.Type == network.Level3 {
			baseRate = rateL3
			newRate = rateL3
		} else if s.Upgradeable {
			newRate = rateL3
		}

		draw := m.NewConstraint(
			mip.LessThanOrEqual,
			s.GridCapacityKW-baseRate*float64(s.Ports),
		)
		draw.NewTerm(newRate, p)
		if s.Upgradeable && s.Type == network.Level2 {
			u, err := v.upgradeVar(s)
			if err != nil {
				return err
			}
			draw.NewTerm((rateL3-rateL2)*float64(s.Ports), u)
		}
	}

	nsPorts := float64(b.Config.NewStationPorts)
	for _, c := range b.Candidates {
		ns, err := v.newStationVar(c)
		if err != nil {
			return err
		}
		draw := m.NewConstraint(mip.LessThanOrEqual, c.GridCapacityKW)
		draw.NewTerm(rateL3*nsPorts, ns)
	}

	maxKM := b.Coverage.MaxDistanceKM
	for _, a := range b.Areas {
		if a.MinPorts <= 0 {
			continue
		}
		row := b.AreaKM[a.AreaID]
		existing := 0.0
		// Constants move to the right-hand side, so collect them first.
		type reach struct {
			station *network.Station
			site    *network.CandidateSite
		}
		var reachable []reach
		for i := range b.AllStations {
			s := b.AllStations[i]
			if row[s.StationID] <= maxKM {
				existing += float64(s.Ports)
				reachable = append(reachable, reach{station: &b.AllStations[i]})
			}
		}
		for i := range b.Candidates {
			c := b.Candidates[i]
			if row[c.SiteID] <= maxKM {
				reachable = append(reachable, reach{site: &b.Candidates[i]})
			}
		}

		ports := m.NewConstraint(
			mip.GreaterThanOrEqual,
			float64(a.MinPorts)-existing,
		)
		for _, r := range reachable {
			if r.station != nil {
				p, err := v.newPortsVar(*r.station)
				if err != nil {
					return err
				}
				ports.NewTerm(1, p)
				rm, err := v.removeVar(*r.station)
				if err != nil {
					return err
				}
				ports.NewTerm(-float64(r.station.Ports), rm)
				continue
			}
			ns, err := v.newStationVar(*r.site)
			if err != nil {
				return err
			}
			ports.NewTerm(nsPorts, ns)
		}
	}
	return nil
}

// Logical family: a station is never upgraded and removed in the same plan.
// Eligibility gating (upgrade only for flagged stations) is structural: the
// upgrade collection is declared over the upgradeable set only.
func addLogicalConstraints(m mip.Model, b *params.Bundle, v *variables) error {
	for _, s := range b.Upgradeable {
		u, err := v.upgradeVar(s)
		if err != nil {
			return err
		}
		rm, err := v.removeVar(s)
		if err != nil {
			return err
		}
		excl := m.NewConstraint(mip.LessThanOrEqual, 1)
		excl.NewTerm(1, u)
		excl.NewTerm(1, rm)
	}
	return nil
}
