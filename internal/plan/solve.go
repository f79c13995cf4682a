package plan

import (
	"context"

	"github.com/nextmv-io/sdk/mip"
	"go.uber.org/zap"

	"github.com/gridvolt/chargeplan/internal/params"
)

// Solve runs one full build-solve-extract cycle for the bundle: fresh model
// instance, variable declaration, constraint assembly, objective composition,
// delegated solve, and extraction. The model lives and dies inside this call;
// nothing is shared across runs.
//
// Outcomes map onto Result.Status: optimal and suboptimal results carry the
// extracted decisions, infeasible results carry a diagnosis when one is
// available. Solver failures return a *SolverRuntimeError and are never
// retried; an identical re-solve would fail identically.
func Solve(ctx context.Context, b *params.Bundle, log *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	if family, detail, ok := preDiagnose(b); !ok {
		log.Info("model provably infeasible before solve",
			zap.String("family", family),
			zap.String("detail", detail))
		return &Result{
			Status:    StatusInfeasible,
			Upgrades:  []string{},
			NewPorts:  map[string]int{},
			Diagnosis: family + ": " + detail,
		}, nil
	}

	m := mip.NewModel()

	v, err := newVariables(m, b)
	if err != nil {
		return nil, err
	}
	if err := buildConstraints(m, b, v); err != nil {
		return nil, err
	}
	if err := composeObjective(m, b, v); err != nil {
		return nil, err
	}

	log.Debug("model built",
		zap.Int("stations", len(b.AllStations)),
		zap.Int("upgradeable", len(b.Upgradeable)),
		zap.Int("candidates", len(b.Candidates)),
		zap.Int("serviceLinks", len(v.links)))

	solver, err := mip.NewSolver(mip.SolverProvider(b.Config.Solver.Provider), m)
	if err != nil {
		return nil, &SolverRuntimeError{Provider: b.Config.Solver.Provider, Err: err}
	}

	opts := mip.NewSolveOptions()
	if err := opts.SetMaximumDuration(b.Config.Solver.MaxDuration); err != nil {
		return nil, &SolverRuntimeError{Provider: b.Config.Solver.Provider, Err: err}
	}
	if err := opts.SetMIPGapRelative(b.Config.Solver.MIPGapRelative); err != nil {
		return nil, &SolverRuntimeError{Provider: b.Config.Solver.Provider, Err: err}
	}
	verbosity := mip.Off
	if b.Config.Solver.Verbose {
		verbosity = mip.Low
	}
	opts.SetVerbosity(verbosity)

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, &SolverRuntimeError{Provider: b.Config.Solver.Provider, Err: err}
	}

	if solution == nil || !solution.HasValues() {
		log.Info("solver reported no feasible point")
		return &Result{
			Status:    StatusInfeasible,
			Upgrades:  []string{},
			NewPorts:  map[string]int{},
			Diagnosis: noDiagnosis,
		}, nil
	}

	r := extract(solution, v)
	log.Info("solve finished",
		zap.String("status", string(r.Status)),
		zap.Float64("objective", r.ObjectiveValue),
		zap.Duration("runtime", r.RunTime),
		zap.Int("upgrades", len(r.Upgrades)))
	return r, nil
}
