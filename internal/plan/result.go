package plan

import (
	"time"

	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// Status classifies the outcome of one solve.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusSubOptimal Status = "suboptimal"
	StatusInfeasible Status = "infeasible"
	StatusError      Status = "error"
)

// Result is the extracted solution of one model instance. Only active
// decisions appear: binaries above 0.5, integers above zero.
type Result struct {
	Status         Status         `json:"status"`
	ObjectiveValue float64        `json:"objective,omitempty"`
	RunTime        time.Duration  `json:"-"`
	Upgrades       []string       `json:"upgrades"`
	NewStations    []string       `json:"newStations,omitempty"`
	Removals       []string       `json:"removals,omitempty"`
	NewPorts       map[string]int `json:"new_ports"`
	CoveredPop     float64        `json:"coveredPopulation,omitempty"`
	Underserved    []string       `json:"underserved,omitempty"`

	// Diagnosis names the constraint family a pre-solve bound check proved
	// infeasible, or "no diagnosis available" when the solver reported
	// infeasibility without one.
	Diagnosis string `json:"diagnosis,omitempty"`
}

// Spend recomputes the capital cost of the extracted decisions against the
// bundle's cost table. Used to verify the budget constraint from the outside.
func (r *Result) Spend(b *params.Bundle) float64 {
	total := 0.0
	for range r.Upgrades {
		total += b.Config.Costs.Upgrade
	}
	for _, c := range b.Candidates {
		for _, id := range r.NewStations {
			if id == c.SiteID {
				total += b.Config.Costs.NewStation
			}
		}
	}
	for _, s := range b.AllStations {
		if n, ok := r.NewPorts[s.StationID]; ok {
			cost := b.Config.Costs.PortL2
			if s.Type == network.Level3 {
				cost = b.Config.Costs.PortL3
			}
			total += cost * float64(n)
		}
	}
	return total
}

// Active reports whether a station appears in the upgrade list.
func (r *Result) Active(stationID string) bool {
	for _, id := range r.Upgrades {
		if id == stationID {
			return true
		}
	}
	return false
}

// Removed reports whether a station appears in the removal list.
func (r *Result) Removed(stationID string) bool {
	for _, id := range r.Removals {
		if id == stationID {
			return true
		}
	}
	return false
}
