package tabdoc

import "github.com/brandonspark/tabdoc/internal/invariant"

// InvariantError reports a violation of one of the core pipeline's structural invariants: a Doc
// built in a way the constructors themselves cannot prevent, such as an At or Cond referring to a
// tab from the wrong registry. These are programmer errors in the caller's document construction,
// not recoverable runtime conditions, so the pipeline panics with one rather than returning it.
//
// It is an alias for [invariant.Error] so that internal passes needing to raise the same class of
// error (see internal/lower) don't have to import this package to do so.
type InvariantError = invariant.Error

func newInvariantError(inv string, detail string, args ...interface{}) *InvariantError {
	return invariant.New(inv, detail, args...)
}
