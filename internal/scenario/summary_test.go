package scenario

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/gridvolt/chargeplan/internal/plan"
)

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Label: "a", Result: &plan.Result{Status: plan.StatusOptimal, ObjectiveValue: 10}},
		{Label: "b", Result: &plan.Result{Status: plan.StatusSubOptimal, ObjectiveValue: 20}},
		{Label: "c", Result: &plan.Result{Status: plan.StatusInfeasible}},
		{Label: "d", Err: errors.New("solver down")},
	}
	s := Summarize(outcomes)

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 2, s.Solved)
	assert.Equal(t, 1, s.Infeasible)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 15.0, s.MeanObjective, 1e-9)
	assert.InDelta(t, 10.0, s.MinObjective, 1e-9)
	assert.InDelta(t, 20.0, s.MaxObjective, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestSummarizeNoSolvedRuns(t *testing.T) {
	s := Summarize([]Outcome{
		{Label: "a", Result: &plan.Result{Status: plan.StatusInfeasible}},
	})
	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, 0, s.Solved)
	assert.Zero(t, s.MeanObjective)
	assert.Zero(t, s.MinObjective)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Runs)
	assert.Zero(t, s.MeanObjective)
}
