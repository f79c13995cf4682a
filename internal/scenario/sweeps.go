package scenario

import (
	"fmt"

	"github.com/gridvolt/chargeplan/internal/params"
)

// BudgetLadder builds overrides that scale the base budget by each factor,
// in the given order.
func BudgetLadder(baseBudget float64, factors []float64) []params.Override {
	overrides := make([]params.Override, 0, len(factors))
	for _, f := range factors {
		budget := baseBudget * f
		overrides = append(overrides, params.Override{
			Label:  fmt.Sprintf("budget x%.2f", f),
			Budget: &budget,
		})
	}
	return overrides
}

// CoverageLadder builds overrides that set the minimum coverage fraction to
// each value, in the given order.
func CoverageLadder(fractions []float64) []params.Override {
	overrides := make([]params.Override, 0, len(fractions))
	for _, frac := range fractions {
		f := frac
		overrides = append(overrides, params.Override{
			Label:               fmt.Sprintf("coverage %.0f%%", f*100),
			MinCoverageFraction: &f,
		})
	}
	return overrides
}

// CostMultipliers builds overrides that scale all capital costs by each
// factor, in the given order.
func CostMultipliers(factors []float64) []params.Override {
	overrides := make([]params.Override, 0, len(factors))
	for _, factor := range factors {
		f := factor
		overrides = append(overrides, params.Override{
			Label:          fmt.Sprintf("costs x%.2f", f),
			CostMultiplier: &f,
		})
	}
	return overrides
}
