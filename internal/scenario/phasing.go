package scenario

import (
	"sort"

	"github.com/gridvolt/chargeplan/internal/params"
	"github.com/gridvolt/chargeplan/internal/plan"
)

// Phasing is the implementation plan derived from a solved result: three
// ordered buckets of station/site identifiers.
type Phasing struct {
	// Immediate: upgrades, highest benefit first.
	Immediate []string `json:"immediate"`
	// MediumTerm: port additions at stations not being upgraded, largest
	// addition first.
	MediumTerm []string `json:"mediumTerm"`
	// LongTerm: new station builds.
	LongTerm []string `json:"longTerm"`
}

// BuildPhasing orders a result's decisions into the three implementation
// phases. Returns nil for results without decisions to phase.
func BuildPhasing(b *params.Bundle, r *plan.Result) *Phasing {
	if r == nil || r.Status == plan.StatusInfeasible || r.Status == plan.StatusError {
		return nil
	}
	if len(r.Upgrades) == 0 && len(r.NewPorts) == 0 && len(r.NewStations) == 0 {
		return nil
	}

	p := &Phasing{
		Immediate: append([]string(nil), r.Upgrades...),
		LongTerm:  append([]string(nil), r.NewStations...),
	}
	sort.Slice(p.Immediate, func(i, j int) bool {
		bi, bj := b.Benefit[p.Immediate[i]], b.Benefit[p.Immediate[j]]
		if bi != bj {
			return bi > bj
		}
		return p.Immediate[i] < p.Immediate[j]
	})

	upgraded := make(map[string]bool, len(r.Upgrades))
	for _, id := range r.Upgrades {
		upgraded[id] = true
	}
	for id := range r.NewPorts {
		if !upgraded[id] {
			p.MediumTerm = append(p.MediumTerm, id)
		}
	}
	sort.Slice(p.MediumTerm, func(i, j int) bool {
		ni, nj := r.NewPorts[p.MediumTerm[i]], r.NewPorts[p.MediumTerm[j]]
		if ni != nj {
			return ni > nj
		}
		return p.MediumTerm[i] < p.MediumTerm[j]
	})

	sort.Strings(p.LongTerm)
	return p
}
