// Package params turns the raw input document into the typed index sets and
// scalar constants the model builder consumes. Preparation happens once per
// dataset; scenario overrides derive cheap copies instead of re-deriving the
// sets and distance tables.
package params

import (
	"sort"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
)

// Bundle is the prepared parameter set for one model build: index sets sorted
// by identifier, the run configuration, and the precomputed distance and
// benefit tables. A Bundle is read-only once returned by Prepare.
type Bundle struct {
	Config   config.Config
	Coverage network.CoverageTargets

	// Index sets. AllStations is the union of Level2 and Level3;
	// Upgradeable is the subset of Level2 flagged upgradeable.
	AllStations []network.Station
	Upgradeable []network.Station
	Level2      []network.Station
	Level3      []network.Station
	Candidates  []network.CandidateSite
	Areas       []network.Area

	// AreaKM[areaID][serverID] is the distance from an area to an existing
	// station or candidate site. StationKM[i][j] is the inter-station
	// distance, candidates included (a new build can be Level 3).
	AreaKM    map[string]map[string]float64
	StationKM map[string]map[string]float64

	// Benefit[stationID] scores an upgrade by the growth-adjusted EV demand
	// within service distance of the station.
	Benefit map[string]float64

	// TotalPopulation across all areas, used by the coverage floor.
	TotalPopulation float64
}

// Prepare validates the input and derives the Bundle. It fails with a
// *network.DataValidationError on malformed records or on an index set the
// configuration requires to be non-empty.
func Prepare(in network.Input, cfg config.Config, dist network.DistanceFunc) (*Bundle, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Bundle{
		Config:    cfg,
		Coverage:  in.Coverage,
		AreaKM:    make(map[string]map[string]float64, len(in.Areas)),
		StationKM: make(map[string]map[string]float64, len(in.Stations)+len(in.Candidates)),
		Benefit:   make(map[string]float64),
	}

	b.AllStations = append(b.AllStations, in.Stations...)
	sort.Slice(b.AllStations, func(i, j int) bool { return b.AllStations[i].StationID < b.AllStations[j].StationID })
	for _, s := range b.AllStations {
		switch {
		case s.Type == network.Level3:
			b.Level3 = append(b.Level3, s)
		default:
			b.Level2 = append(b.Level2, s)
			if s.Upgradeable {
				b.Upgradeable = append(b.Upgradeable, s)
			}
		}
	}

	b.Candidates = append(b.Candidates, in.Candidates...)
	sort.Slice(b.Candidates, func(i, j int) bool { return b.Candidates[i].SiteID < b.Candidates[j].SiteID })

	b.Areas = append(b.Areas, in.Areas...)
	sort.Slice(b.Areas, func(i, j int) bool { return b.Areas[i].AreaID < b.Areas[j].AreaID })

	if len(b.Upgradeable) == 0 && cfg.Budget > 0 && cfg.MaxUpgradesPerPeriod > 0 && len(b.Candidates) == 0 {
		return nil, &network.DataValidationError{
			Field:  "stations.upgradeable",
			Reason: "budget allows enhancements but no station is upgradeable and no candidate site exists",
		}
	}

	// Server coordinates, stations and candidates alike.
	type server struct {
		id       string
		lat, lon float64
	}
	servers := make([]server, 0, len(b.AllStations)+len(b.Candidates))
	for _, s := range b.AllStations {
		servers = append(servers, server{s.StationID, s.Lat, s.Lon})
	}
	for _, c := range b.Candidates {
		servers = append(servers, server{c.SiteID, c.Lat, c.Lon})
	}

	for _, a := range b.Areas {
		b.TotalPopulation += a.Population
		row := make(map[string]float64, len(servers))
		for _, sv := range servers {
			row[sv.id] = dist(a.Lat, a.Lon, sv.lat, sv.lon)
		}
		b.AreaKM[a.AreaID] = row
	}

	for _, si := range servers {
		row := make(map[string]float64, len(servers))
		for _, sj := range servers {
			if si.id == sj.id {
				continue
			}
			row[sj.id] = dist(si.lat, si.lon, sj.lat, sj.lon)
		}
		b.StationKM[si.id] = row
	}

	for _, s := range b.Upgradeable {
		score := 0.0
		for _, a := range b.Areas {
			if b.AreaKM[a.AreaID][s.StationID] <= in.Coverage.MaxDistanceKM {
				score += a.Population * a.EVOwnership * (1 + a.GrowthRate)
			}
		}
		b.Benefit[s.StationID] = score
	}

	return b, nil
}

// With returns a copy of the bundle under the overridden configuration. The
// index sets and distance tables are shared; only the scalar parameters
// change, so a scenario sweep pays for preparation once.
func (b *Bundle) With(o Override) *Bundle {
	derived := *b
	derived.Config = o.Apply(b.Config)
	return &derived
}
