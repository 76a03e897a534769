// Package results carries the success-or-failure envelope service operations
// return. Infrastructure errors travel as plain Go errors; business failures
// travel in the Failure payload so handlers can publish them.
package results

// OperationResult holds either a success payload or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// Ok wraps a success payload.
func Ok[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// Fail wraps a failure payload.
func Fail[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
