package authgraph

import "errors"

// ErrNoValidRevisions is the core's single structural error: every input
// revision was either Deleted or rejected by the spam gate, so no
// PageAnalysis could be produced.
var ErrNoValidRevisions = errors.New("authgraph: no valid revisions")

// AnalysisError wraps ErrNoValidRevisions (or, in principle, any future
// structural failure) so callers can compare with errors.Is.
type AnalysisError struct {
	err error
}

func (e *AnalysisError) Error() string { return e.err.Error() }
func (e *AnalysisError) Unwrap() error { return e.err }

func newAnalysisError(err error) *AnalysisError { return &AnalysisError{err: err} }
