package plan

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// composeObjective builds the weighted maximization objective:
//
//	  w_coverage    * sum(population * ev_ownership * covered)
//	- w_operating   * (decision-dependent operating cost)
//	+ w_upgrade     * sum(benefit_score * upgrade)
//	- w_underserved * penalty * sum(underserved)
//
// Only decision-dependent operating cost enters: the cost of untouched
// stations is a constant and cannot change the argmax.
func composeObjective(m mip.Model, b *params.Bundle, v *variables) error {
	w := b.Config.Weights
	costs := b.Config.Costs

	m.Objective().SetMaximize()

	for _, l := range v.links {
		m.Objective().NewTerm(w.Coverage*l.Area.Population*l.Area.EVOwnership, v.Covered.Get(l))
	}

	for _, s := range b.Upgradeable {
		u, err := v.upgradeVar(s)
		if err != nil {
			return err
		}
		// Upgrading swaps Level-2 operating cost for Level-3.
		m.Objective().NewTerm(-w.Operating*(costs.OperatingL3-costs.OperatingL2), u)
		m.Objective().NewTerm(w.Upgrade*b.Benefit[s.StationID], u)
	}

	for _, c := range b.Candidates {
		ns, err := v.newStationVar(c)
		if err != nil {
			return err
		}
		m.Objective().NewTerm(-w.Operating*costs.OperatingL3, ns)
	}

	for _, s := range b.AllStations {
		rm, err := v.removeVar(s)
		if err != nil {
			return err
		}
		savings := costs.RemovalSavings
		if s.Type == network.Level3 {
			savings = costs.OperatingL3
		}
		m.Objective().NewTerm(w.Operating*savings, rm)
	}

	for _, a := range b.Areas {
		m.Objective().NewTerm(-w.Underserved*b.Config.UnderservedPenalty, v.Underserved.Get(a))
	}
	return nil
}
