package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/params"
	"github.com/gridvolt/chargeplan/internal/plan"
)

func baseBundle() *params.Bundle {
	return &params.Bundle{Config: config.Default()}
}

func budgetOverride(label string, budget float64) params.Override {
	b := budget
	return params.Override{Label: label, Budget: &b}
}

func TestRunPreservesSubmissionOrder(t *testing.T) {
	// The overridden budget doubles as a per-scenario delay so that later
	// submissions finish first; results must still come back in submission
	// order.
	overrides := []params.Override{
		budgetOverride("A", 30),
		budgetOverride("B", 15),
		budgetOverride("C", 0),
	}
	r := &Runner{
		Base:    baseBundle(),
		Workers: 3,
		Log:     zap.NewNop(),
		Solve: func(ctx context.Context, b *params.Bundle) (*plan.Result, error) {
			time.Sleep(time.Duration(b.Config.Budget) * time.Millisecond)
			return &plan.Result{Status: plan.StatusOptimal, ObjectiveValue: b.Config.Budget}, nil
		},
	}

	outcomes, err := r.Run(context.Background(), overrides)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "A", outcomes[0].Label)
	assert.Equal(t, "B", outcomes[1].Label)
	assert.Equal(t, "C", outcomes[2].Label)
	assert.InDelta(t, 30.0, outcomes[0].Result.ObjectiveValue, 1e-9)
	assert.InDelta(t, 0.0, outcomes[2].Result.ObjectiveValue, 1e-9)
	for _, o := range outcomes {
		assert.NotEmpty(t, o.RunID)
	}
}

func TestRunIsolatesScenarioFailures(t *testing.T) {
	overrides := []params.Override{
		budgetOverride("ok-1", 1),
		budgetOverride("boom", 2),
		budgetOverride("ok-2", 3),
	}
	r := &Runner{
		Base:    baseBundle(),
		Workers: 2,
		Log:     zap.NewNop(),
		Solve: func(ctx context.Context, b *params.Bundle) (*plan.Result, error) {
			if b.Config.Budget == 2 {
				return nil, &plan.SolverRuntimeError{Provider: "highs", Err: errors.New("license lost")}
			}
			return &plan.Result{Status: plan.StatusOptimal}, nil
		},
	}

	outcomes, err := r.Run(context.Background(), overrides)
	require.NoError(t, err, "one scenario's failure must not abort the sweep")
	require.Len(t, outcomes, 3)

	assert.NotNil(t, outcomes[0].Result)
	assert.NoError(t, outcomes[0].Err)

	require.Error(t, outcomes[1].Err)
	var sErr *plan.SolverRuntimeError
	assert.ErrorAs(t, outcomes[1].Err, &sErr)
	assert.Nil(t, outcomes[1].Result)
	assert.NotEmpty(t, outcomes[1].ErrText)

	assert.NotNil(t, outcomes[2].Result)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := &Runner{
		Base:    baseBundle(),
		Workers: 1,
		Log:     zap.NewNop(),
		Solve: func(ctx context.Context, b *params.Bundle) (*plan.Result, error) {
			called = true
			return &plan.Result{}, nil
		},
	}
	_, err := r.Run(ctx, []params.Override{budgetOverride("A", 1)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "solve must not run after cancellation")
}

func TestRunEachScenarioGetsDerivedBundle(t *testing.T) {
	var seen []float64
	r := &Runner{
		Base:    baseBundle(),
		Workers: 1,
		Log:     zap.NewNop(),
		Solve: func(ctx context.Context, b *params.Bundle) (*plan.Result, error) {
			seen = append(seen, b.Config.Budget)
			return &plan.Result{Status: plan.StatusOptimal}, nil
		},
	}
	_, err := r.Run(context.Background(), []params.Override{
		budgetOverride("low", 100),
		budgetOverride("high", 900),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 900}, seen)

	// The base bundle's configuration is never mutated by a sweep.
	assert.InDelta(t, config.Default().Budget, r.Base.Config.Budget, 1e-9)
}
