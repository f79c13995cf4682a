package plan

import (
	"fmt"

	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// noDiagnosis is reported when the solver proves infeasibility but no bound
// check can name the failing family (HiGHS through the SDK exposes no
// conflict information).
const noDiagnosis = "no diagnosis available"

// preDiagnose runs cheap bound checks that can prove a constraint family
// infeasible before the solver is invoked. It returns the family name and an
// explanation, or ok=true when no family is provably violated. A clean
// pre-diagnosis does not imply feasibility.
func preDiagnose(b *params.Bundle) (family, detail string, ok bool) {
	maxKM := b.Coverage.MaxDistanceKM

	// Coverage: even serving every reachable area cannot reach the floor.
	reachablePop := 0.0
	for _, a := range b.Areas {
		row := b.AreaKM[a.AreaID]
		for _, s := range b.AllStations {
			if row[s.StationID] <= maxKM {
				reachablePop += a.Population
				break
			}
		}
		for _, c := range b.Candidates {
			if row[c.SiteID] <= maxKM {
				// Counted once per area at most.
				if !areaReachesStation(b, a) {
					reachablePop += a.Population
				}
				break
			}
		}
	}
	required := b.Config.MinCoverageFraction * b.TotalPopulation
	if reachablePop < required {
		return "coverage",
			fmt.Sprintf("reachable population %.0f below required %.0f", reachablePop, required),
			false
	}

	rateL2 := b.Config.Costs.PowerPerPortL2
	rateL3 := b.Config.Costs.PowerPerPortL3

	// Infrastructure: a station's existing draw already exceeds its grid
	// capacity; no non-negative decision can lower it.
	for _, s := range b.AllStations {
		rate := rateL2
		if s.Type == network.Level3 {
			rate = rateL3
		}
		if rate*float64(s.Ports) > s.GridCapacityKW {
			return "infrastructure",
				fmt.Sprintf("station %s draws %.1f kW over its %.1f kW capacity", s.StationID, rate*float64(s.Ports), s.GridCapacityKW),
				false
		}
	}

	// Infrastructure: an area's port floor exceeds what every reachable
	// station and candidate could provide at maximum build-out.
	for _, a := range b.Areas {
		if a.MinPorts <= 0 {
			continue
		}
		row := b.AreaKM[a.AreaID]
		best := 0
		for _, s := range b.AllStations {
			if row[s.StationID] <= maxKM {
				best += s.Ports + b.Config.MaxNewPortsPerStation
			}
		}
		for _, c := range b.Candidates {
			if row[c.SiteID] <= maxKM {
				best += b.Config.NewStationPorts
			}
		}
		if best < a.MinPorts {
			return "infrastructure",
				fmt.Sprintf("area %s requires %d ports but at most %d are buildable in reach", a.AreaID, a.MinPorts, best),
				false
		}
	}

	return "", "", true
}

func areaReachesStation(b *params.Bundle, a network.Area) bool {
	row := b.AreaKM[a.AreaID]
	for _, s := range b.AllStations {
		if row[s.StationID] <= b.Coverage.MaxDistanceKM {
			return true
		}
	}
	return false
}
