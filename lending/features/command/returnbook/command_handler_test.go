package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/features/command/returnbook"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

const loanB1 = `{"book_issued":"B1","issue_date":"2025-01-01","return_date":"2025-01-08","enrollment_no":"E001",` +
	`"issuer_first_name":"Ada","issuer_last_name":"Lovelace","issuer_semester":3,"status":"issued","fine":0}`

func day(date string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		panic(err)
	}

	return t.Add(10 * time.Hour)
}

func fineOf(t *testing.T, document recordstore.StorableDocument) float64 {
	t.Helper()

	fields, err := document.Decode()
	require.NoError(t, err)

	return fields[shell.FieldFine].(float64)
}

func Test_CommandHandler_Handle_OnTime_DeletesLoan(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, loanB1)
	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-08")))

	// assert
	require.NoError(t, err)
	assert.False(t, result.FineCharged)
	assert.True(t, result.Fine.IsZero())
	assert.Empty(t, store.Documents(shell.CollectionBookIssue))
}

func Test_CommandHandler_Handle_Late_KeepsLoanWithFine(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, loanB1)
	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-11")))

	// assert
	require.NoError(t, err)
	assert.True(t, result.FineCharged)
	assert.Equal(t, "1.50", result.Fine.StringFixed(2))

	loans := store.Documents(shell.CollectionBookIssue)
	require.Len(t, loans, 1)
	assert.InDelta(t, 1.5, fineOf(t, loans[0]), 1e-9)
}

func Test_CommandHandler_Handle_LateTwice_OverwritesFine(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, loanB1)
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err1 := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-11")))
	result, err2 := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-13")))

	// assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, "2.50", result.Fine.StringFixed(2))

	loans := store.Documents(shell.CollectionBookIssue)
	require.Len(t, loans, 1)
	assert.InDelta(t, 2.5, fineOf(t, loans[0]), 1e-9)
}

func Test_CommandHandler_Handle_OnlyFirstMatchingLoanIsAffected(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, loanB1)
	store.Seed(shell.CollectionBookIssue, loanB1)
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-02")))

	// assert
	require.NoError(t, err)
	assert.Len(t, store.Documents(shell.CollectionBookIssue), 1)
}

func Test_CommandHandler_Handle_UnknownLoan(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, loanB1)
	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand("E002", "B1", day("2025-01-02")))

	// assert
	assert.ErrorIs(t, err, shell.ErrLoanNotFound)
	assert.Equal(t, shell.OutcomeRejected, result.GetOutcome())
	assert.Len(t, store.Documents(shell.CollectionBookIssue), 1)
}

func Test_CommandHandler_Handle_StoreFailure(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.FailWith(recordstore.ErrWritingDocumentFailed)
	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand("E001", "B1", day("2025-01-02")))

	// assert
	assert.ErrorIs(t, err, shell.ErrBackendUnavailable)
	assert.Equal(t, shell.OutcomeBackendUnavailable, result.GetOutcome())
}
