package scenario

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gridvolt/chargeplan/internal/plan"
)

// Summary aggregates a sweep's objective values for sensitivity reporting.
// Only solved scenarios (optimal or suboptimal) contribute; infeasible and
// failed runs are counted but excluded from the statistics.
type Summary struct {
	Runs          int     `json:"runs"`
	Solved        int     `json:"solved"`
	Infeasible    int     `json:"infeasible"`
	Failed        int     `json:"failed"`
	MeanObjective float64 `json:"meanObjective"`
	StdDev        float64 `json:"stdDev"`
	MinObjective  float64 `json:"minObjective"`
	MaxObjective  float64 `json:"maxObjective"`
}

// Summarize reduces a sweep's outcomes to summary statistics.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Runs: len(outcomes)}
	var objectives []float64
	for _, o := range outcomes {
		switch {
		case o.Err != nil || o.Result == nil:
			s.Failed++
		case o.Result.Status == plan.StatusInfeasible:
			s.Infeasible++
		default:
			s.Solved++
			objectives = append(objectives, o.Result.ObjectiveValue)
		}
	}
	if len(objectives) == 0 {
		return s
	}
	s.MeanObjective = stat.Mean(objectives, nil)
	if len(objectives) > 1 {
		s.StdDev = stat.StdDev(objectives, nil)
	}
	s.MinObjective = floats.Min(objectives)
	s.MaxObjective = floats.Max(objectives)
	return s
}
