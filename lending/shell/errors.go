package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/recordstore"
)

var (
	// ErrBackendUnavailable means the record store is not connected or failed to answer.
	ErrBackendUnavailable = errors.New("database connection not available")

	// ErrMissingInput means the enrollment number was left blank.
	ErrMissingInput = errors.New("please enter enrollment number")

	ErrStudentNotFound = core.ErrStudentNotFound
	ErrLoanNotFound    = core.ErrLoanNotFound

	// ErrInvalidDocument means a stored document could not be decoded into a domain type.
	ErrInvalidDocument = errors.New("invalid stored document")
)

// ClassifyError maps store and context failures to ErrBackendUnavailable
// and leaves business errors untouched. The original error stays in the chain.
func ClassifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBackendUnavailable):
		return err
	case IsBusinessError(err):
		return err
	case isBackendFailure(err):
		return errors.Join(ErrBackendUnavailable, err)
	default:
		return err
	}
}

// IsBusinessError reports whether err is a rejection by the lending rules.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrMissingInput)
}

func isBackendFailure(err error) bool {
	return errors.Is(err, recordstore.ErrQueryingDocumentsFailed) ||
		errors.Is(err, recordstore.ErrWritingDocumentFailed) ||
		errors.Is(err, recordstore.ErrGettingRowsAffectedFailed) ||
		errors.Is(err, recordstore.ErrPingFailed) ||
		errors.Is(err, recordstore.ErrNilDatabaseConnection) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
