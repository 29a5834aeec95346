package shell

import "errors"

// Outcome classifies how a handler call ended.
type Outcome string

const (
	OutcomeSuccess            Outcome = "success"
	OutcomeRejected           Outcome = "rejected"
	OutcomeBackendUnavailable Outcome = "backend_unavailable"
	OutcomeFailed             Outcome = "failed"
)

// HandlerResult is embedded in every command and query result.
// It lets wrappers and front-ends tell business rejections from an unreachable backend
// without inspecting the error chain again.
type HandlerResult struct {
	Outcome Outcome
}

// GetOutcome returns the outcome; it makes every embedding result satisfy Result.
func (r HandlerResult) GetOutcome() Outcome {
	return r.Outcome
}

func NewSuccessResult() HandlerResult {
	return HandlerResult{Outcome: OutcomeSuccess}
}

// NewResultFor classifies err: nil is success, business errors are rejections,
// ErrBackendUnavailable is backend_unavailable, anything else failed.
func NewResultFor(err error) HandlerResult {
	switch {
	case err == nil:
		return NewSuccessResult()
	case IsBusinessError(err):
		return HandlerResult{Outcome: OutcomeRejected}
	case errors.Is(ClassifyError(err), ErrBackendUnavailable):
		return HandlerResult{Outcome: OutcomeBackendUnavailable}
	default:
		return HandlerResult{Outcome: OutcomeFailed}
	}
}

