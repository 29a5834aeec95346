package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
)

func Test_ClassifyError_StoreFailures_BecomeBackendUnavailable(t *testing.T) {
	storeErrors := []error{
		errors.Join(recordstore.ErrQueryingDocumentsFailed, errors.New("connection refused")),
		errors.Join(recordstore.ErrWritingDocumentFailed, errors.New("broken pipe")),
		recordstore.ErrGettingRowsAffectedFailed,
		recordstore.ErrPingFailed,
		recordstore.ErrNilDatabaseConnection,
		context.DeadlineExceeded,
		fmt.Errorf("wrapped: %w", context.Canceled),
	}

	for _, storeErr := range storeErrors {
		t.Run(storeErr.Error(), func(t *testing.T) {
			// act
			classified := shell.ClassifyError(storeErr)

			// assert
			assert.ErrorIs(t, classified, shell.ErrBackendUnavailable)
			assert.ErrorIs(t, classified, storeErr)
		})
	}
}

func Test_ClassifyError_BusinessErrors_PassThrough(t *testing.T) {
	for _, businessErr := range []error{shell.ErrStudentNotFound, shell.ErrLoanNotFound, shell.ErrMissingInput} {
		// act
		classified := shell.ClassifyError(businessErr)

		// assert
		assert.Equal(t, businessErr, classified)
		assert.NotErrorIs(t, classified, shell.ErrBackendUnavailable)
	}
}

func Test_ClassifyError_Nil(t *testing.T) {
	assert.NoError(t, shell.ClassifyError(nil))
}

func Test_ClassifyError_DoesNotWrapTwice(t *testing.T) {
	// arrange
	alreadyClassified := errors.Join(shell.ErrBackendUnavailable, recordstore.ErrPingFailed)

	// act
	classified := shell.ClassifyError(alreadyClassified)

	// assert
	assert.Equal(t, alreadyClassified, classified)
}

func Test_NewResultFor(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected shell.Outcome
	}{
		{name: "nil", err: nil, expected: shell.OutcomeSuccess},
		{name: "student not found", err: shell.ErrStudentNotFound, expected: shell.OutcomeRejected},
		{name: "loan not found", err: shell.ErrLoanNotFound, expected: shell.OutcomeRejected},
		{name: "query failed", err: recordstore.ErrQueryingDocumentsFailed, expected: shell.OutcomeBackendUnavailable},
		{name: "backend unavailable", err: shell.ErrBackendUnavailable, expected: shell.OutcomeBackendUnavailable},
		{name: "invalid document", err: shell.ErrInvalidDocument, expected: shell.OutcomeFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.NewResultFor(tc.err).GetOutcome())
		})
	}
}
