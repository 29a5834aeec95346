package issuebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/features/command/issuebook"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

func Test_CommandHandler_Handle_WritesExactlyOneLoan(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionStudentRecord, `{"enrollment_no":"E001","first_name":"Ada","last_name":"Lovelace","semester":3}`)
	handler := issuebook.NewCommandHandler(store)
	issuedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	// act
	result, err := handler.Handle(context.Background(), issuebook.BuildCommand("E001", "B1", issuedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, shell.OutcomeSuccess, result.GetOutcome())

	loans := store.Documents(shell.CollectionBookIssue)
	require.Len(t, loans, 1)
	assert.JSONEq(t, `{
		"book_issued":"B1",
		"issue_date":"2025-01-01",
		"return_date":"2025-01-08",
		"enrollment_no":"E001",
		"issuer_first_name":"Ada",
		"issuer_last_name":"Lovelace",
		"issuer_semester":3,
		"status":"issued",
		"fine":0
	}`, string(loans[0].PayloadJSON))
}

func Test_CommandHandler_Handle_UnknownStudent_WritesNothing(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	handler := issuebook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), issuebook.BuildCommand("E404", "B1", time.Now()))

	// assert
	assert.ErrorIs(t, err, shell.ErrStudentNotFound)
	assert.Equal(t, shell.OutcomeRejected, result.GetOutcome())
	assert.Empty(t, store.Documents(shell.CollectionBookIssue))
}

func Test_CommandHandler_Handle_StoreFailure_IsBackendUnavailable(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.FailWith(recordstore.ErrQueryingDocumentsFailed)
	handler := issuebook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), issuebook.BuildCommand("E001", "B1", time.Now()))

	// assert
	assert.ErrorIs(t, err, shell.ErrBackendUnavailable)
	assert.ErrorIs(t, err, recordstore.ErrQueryingDocumentsFailed)
	assert.Equal(t, shell.OutcomeBackendUnavailable, result.GetOutcome())
	assert.Equal(t, []string{"FindOne"}, store.Calls())
}

func Test_CommandHandler_Handle_SameBookTwice_IsAllowed(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionStudentRecord, `{"enrollment_no":"E001","first_name":"Ada","last_name":"Lovelace","semester":"3"}`)
	handler := issuebook.NewCommandHandler(store)
	command := issuebook.BuildCommand("E001", "B1", time.Now())

	// act
	_, err1 := handler.Handle(context.Background(), command)
	_, err2 := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Len(t, store.Documents(shell.CollectionBookIssue), 2)
}
