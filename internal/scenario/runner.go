// Package scenario re-runs the full build-solve-extract pipeline under
// perturbed parameters for what-if analysis, and derives the phased
// implementation plan from a solved result.
package scenario

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridvolt/chargeplan/internal/params"
	"github.com/gridvolt/chargeplan/internal/plan"
)

// SolveFunc runs one isolated build-solve-extract cycle. plan.Solve is the
// production implementation; tests substitute fakes.
type SolveFunc func(ctx context.Context, b *params.Bundle) (*plan.Result, error)

// Outcome is one scenario's result, tagged with the override that produced
// it. Either Result or Err is set, never both.
type Outcome struct {
	RunID    string          `json:"runId"`
	Label    string          `json:"label"`
	Override params.Override `json:"override"`
	Result   *plan.Result    `json:"result,omitempty"`
	Err      error           `json:"-"`
	ErrText  string          `json:"error,omitempty"`
}

// Runner sweeps a base bundle over a sequence of overrides. Runs share only
// the read-only base bundle; each run builds its own model. Workers bounds
// the number of concurrent solver sessions.
type Runner struct {
	Base    *params.Bundle
	Solve   SolveFunc
	Workers int
	Log     *zap.Logger
}

// NewRunner wires the production pipeline under the given logger.
func NewRunner(base *params.Bundle, log *zap.Logger, workers int) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		Base: base,
		Solve: func(ctx context.Context, b *params.Bundle) (*plan.Result, error) {
			return plan.Solve(ctx, b, log)
		},
		Workers: workers,
		Log:     log,
	}
}

// Run executes one scenario per override and returns the outcomes in the
// callers' override order regardless of completion order. One scenario's
// failure never aborts its siblings: errors land in that scenario's Outcome.
// Only context cancellation stops the sweep early.
func (r *Runner) Run(ctx context.Context, overrides []params.Override) ([]Outcome, error) {
	outcomes := make([]Outcome, len(overrides))

	g, ctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, o := range overrides {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := Outcome{
				RunID:    uuid.NewString(),
				Label:    o.Label,
				Override: o,
			}
			res, err := r.Solve(ctx, r.Base.With(o))
			if err != nil {
				out.Err = err
				out.ErrText = err.Error()
				r.Log.Warn("scenario failed",
					zap.String("label", o.Label),
					zap.String("runId", out.RunID),
					zap.Error(err))
			} else {
				out.Result = res
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
