// Package plan builds and solves the network-enhancement MILP: one model
// instance per run, owning its variable collections, constraint families,
// and objective, with solution extraction back into plain Go values.
package plan

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// serviceLink is an (area, server) pair within service distance. Servers are
// existing stations or candidate sites; links are declared sparsely, only for
// pairs the coverage radius admits.
type serviceLink struct {
	Area        network.Area
	Server      string
	ToCandidate bool
	KM          float64
}

// ID is implemented to fulfill the model.Identifier interface.
func (l serviceLink) ID() string {
	return l.Area.AreaID + "->" + l.Server
}

// variables holds one typed field per decision-variable collection, so a
// wrong index is a compile- or build-time failure instead of a string lookup
// miss at solve time.
type variables struct {
	// Upgrade[i] = 1 iff upgradeable station i is upgraded to Level 3.
	Upgrade model.MultiMap[mip.Bool, network.Station]
	// NewStation[c] = 1 iff a station is built at candidate site c.
	NewStation model.MultiMap[mip.Bool, network.CandidateSite]
	// Remove[i] = 1 iff existing station i is decommissioned.
	Remove model.MultiMap[mip.Bool, network.Station]
	// NewPorts[i] = additional ports installed at existing station i.
	NewPorts model.MultiMap[mip.Int, network.Station]
	// Covered[l] = 1 iff the link's area is served by the link's server.
	Covered model.MultiMap[mip.Bool, serviceLink]
	// Underserved[a] = 1 iff area a ends up below the coverage threshold.
	Underserved model.MultiMap[mip.Bool, network.Area]

	links []serviceLink

	// Sorted index sets, shared with the bundle that declared them.
	setUpgradeable []network.Station
	setStations    []network.Station
	setCandidates  []network.CandidateSite
	setAreas       []network.Area

	// Membership maps backing the build-time index checks and ID lookups.
	upgradeable map[string]network.Station
	stations    map[string]network.Station
	candidates  map[string]network.CandidateSite

	registered map[string]bool
}

// register records a collection name; declaring the same name twice is a
// build defect.
func (v *variables) register(name string) error {
	if v.registered[name] {
		return &ModelBuildError{Collection: name, Reason: "collection declared twice"}
	}
	v.registered[name] = true
	return nil
}

// newVariables declares every decision-variable collection on m over the
// bundle's index sets.
func newVariables(m mip.Model, b *params.Bundle) (*variables, error) {
	v := &variables{
		setUpgradeable: b.Upgradeable,
		setStations:    b.AllStations,
		setCandidates:  b.Candidates,
		setAreas:       b.Areas,

		upgradeable: make(map[string]network.Station, len(b.Upgradeable)),
		stations:    make(map[string]network.Station, len(b.AllStations)),
		candidates:  make(map[string]network.CandidateSite, len(b.Candidates)),
		registered:  make(map[string]bool, 6),
	}
	for _, s := range b.Upgradeable {
		v.upgradeable[s.StationID] = s
	}
	for _, s := range b.AllStations {
		v.stations[s.StationID] = s
	}
	for _, c := range b.Candidates {
		v.candidates[c.SiteID] = c
	}

	for _, name := range []string{"upgrade", "new_station", "remove", "new_ports", "covered", "underserved"} {
		if err := v.register(name); err != nil {
			return nil, err
		}
	}

	v.Upgrade = model.NewMultiMap(
		func(...network.Station) mip.Bool {
			return m.NewBool()
		}, b.Upgradeable)

	v.NewStation = model.NewMultiMap(
		func(...network.CandidateSite) mip.Bool {
			return m.NewBool()
		}, b.Candidates)

	v.Remove = model.NewMultiMap(
		func(...network.Station) mip.Bool {
			return m.NewBool()
		}, b.AllStations)

	maxPorts := int64(b.Config.MaxNewPortsPerStation)
	v.NewPorts = model.NewMultiMap(
		func(...network.Station) mip.Int {
			return m.NewInt(0, maxPorts)
		}, b.AllStations)

	v.links = serviceLinks(b)
	v.Covered = model.NewMultiMap(
		func(...serviceLink) mip.Bool {
			return m.NewBool()
		}, v.links)

	v.Underserved = model.NewMultiMap(
		func(...network.Area) mip.Bool {
			return m.NewBool()
		}, b.Areas)

	return v, nil
}

// serviceLinks enumerates the sparse (area, server) pairs within the
// coverage radius, in deterministic order.
func serviceLinks(b *params.Bundle) []serviceLink {
	maxKM := b.Coverage.MaxDistanceKM
	links := make([]serviceLink, 0, len(b.Areas))
	for _, a := range b.Areas {
		row := b.AreaKM[a.AreaID]
		for _, s := range b.AllStations {
			if d := row[s.StationID]; d <= maxKM {
				links = append(links, serviceLink{Area: a, Server: s.StationID, KM: d})
			}
		}
		for _, c := range b.Candidates {
			if d := row[c.SiteID]; d <= maxKM {
				links = append(links, serviceLink{Area: a, Server: c.SiteID, ToCandidate: true, KM: d})
			}
		}
	}
	return links
}

// upgradeVar fetches the upgrade variable for a station, failing when the
// station is outside the upgradeable set.
func (v *variables) upgradeVar(s network.Station) (mip.Bool, error) {
	if _, ok := v.upgradeable[s.StationID]; !ok {
		return nil, &ModelBuildError{Collection: "upgrade", Index: s.StationID, Reason: "station not in upgradeable set"}
	}
	return v.Upgrade.Get(s), nil
}

// removeVar fetches the removal variable for an existing station.
func (v *variables) removeVar(s network.Station) (mip.Bool, error) {
	if _, ok := v.stations[s.StationID]; !ok {
		return nil, &ModelBuildError{Collection: "remove", Index: s.StationID, Reason: "unknown station"}
	}
	return v.Remove.Get(s), nil
}

// newPortsVar fetches the port-count variable for an existing station.
func (v *variables) newPortsVar(s network.Station) (mip.Int, error) {
	if _, ok := v.stations[s.StationID]; !ok {
		return nil, &ModelBuildError{Collection: "new_ports", Index: s.StationID, Reason: "unknown station"}
	}
	return v.NewPorts.Get(s), nil
}

// newStationVar fetches the build variable for a candidate site.
func (v *variables) newStationVar(c network.CandidateSite) (mip.Bool, error) {
	if _, ok := v.candidates[c.SiteID]; !ok {
		return nil, &ModelBuildError{Collection: "new_station", Index: c.SiteID, Reason: "unknown candidate site"}
	}
	return v.NewStation.Get(c), nil
}

// l3Indicator resolves a Level-3 decision indicator by entity ID: the upgrade
// variable for an upgradeable station or the build variable for a candidate
// site. Any other ID is a build defect.
func (v *variables) l3Indicator(id string) (mip.Bool, error) {
	if s, ok := v.upgradeable[id]; ok {
		return v.Upgrade.Get(s), nil
	}
	if c, ok := v.candidates[id]; ok {
		return v.NewStation.Get(c), nil
	}
	return nil, &ModelBuildError{Collection: "upgrade", Index: id, Reason: "no Level-3 decision variable for this id"}
}
