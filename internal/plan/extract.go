package plan

import (
	"math"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// binaryThreshold decides whether a solved binary counts as selected.
const binaryThreshold = 0.5

// solutionValues is the slice of mip.Solution the extractor needs. Narrowed
// so tests can substitute a fixed-value solution.
type solutionValues interface {
	HasValues() bool
	IsOptimal() bool
	ObjectiveValue() float64
	RunTime() time.Duration
	Value(v mip.Var) float64
}

// extract reads the solved values back into a Result, keeping only active
// decisions. Callers are responsible for only passing solutions with values.
func extract(sol solutionValues, v *variables) *Result {
	r := &Result{
		Status:         StatusSubOptimal,
		ObjectiveValue: sol.ObjectiveValue(),
		RunTime:        sol.RunTime(),
		Upgrades:       []string{},
		NewPorts:       map[string]int{},
	}
	if sol.IsOptimal() {
		r.Status = StatusOptimal
	}

	// Iteration follows the sorted index sets, so equal solutions extract to
	// identical results.
	for _, l := range v.links {
		if sol.Value(v.Covered.Get(l)) > binaryThreshold {
			r.CoveredPop += l.Area.Population
		}
	}
	for _, s := range v.setUpgradeable {
		if sol.Value(v.Upgrade.Get(s)) > binaryThreshold {
			r.Upgrades = append(r.Upgrades, s.StationID)
		}
	}
	for _, c := range v.setCandidates {
		if sol.Value(v.NewStation.Get(c)) > binaryThreshold {
			r.NewStations = append(r.NewStations, c.SiteID)
		}
	}
	for _, s := range v.setStations {
		if sol.Value(v.Remove.Get(s)) > binaryThreshold {
			r.Removals = append(r.Removals, s.StationID)
		}
		if n := math.Round(sol.Value(v.NewPorts.Get(s))); n > 0 {
			r.NewPorts[s.StationID] = int(n)
		}
	}
	for _, a := range v.setAreas {
		if sol.Value(v.Underserved.Get(a)) > binaryThreshold {
			r.Underserved = append(r.Underserved, a.AreaID)
		}
	}
	return r
}
