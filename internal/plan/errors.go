package plan

import "fmt"

// ModelBuildError reports an internal inconsistency between declared variable
// collections and the indices a constraint or objective term references. It
// indicates a programming defect and is never retried.
type ModelBuildError struct {
	Collection string
	Index      string
	Reason     string
}

func (e *ModelBuildError) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("model build: %s[%s]: %s", e.Collection, e.Index, e.Reason)
	}
	return fmt.Sprintf("model build: %s: %s", e.Collection, e.Reason)
}

// SolverRuntimeError reports a failure of the delegated solver itself
// (provider not available, session failure). Fatal for the run that hit it;
// sibling scenario runs are unaffected.
type SolverRuntimeError struct {
	Provider string
	Err      error
}

func (e *SolverRuntimeError) Error() string {
	return fmt.Sprintf("solver %q: %v", e.Provider, e.Err)
}

func (e *SolverRuntimeError) Unwrap() error { return e.Err }
