package overduebooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/features/query/overduebooks"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

func Test_QueryHandler_Handle_ListsOverdueLoans(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionBookIssue, `{"book_issued":"B1","issue_date":"2025-01-01","return_date":"2025-01-08","enrollment_no":"E001","status":"issued","fine":0}`)
	store.Seed(shell.CollectionBookIssue, `{"book_issued":"B2","issue_date":"2025-01-05","return_date":"2025-01-12","enrollment_no":"E001","status":"issued","fine":0}`)
	handler := overduebooks.NewQueryHandler(store)
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	// act
	result, err := handler.Handle(context.Background(), overduebooks.BuildQuery("E001", now))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "B1", result.Books[0].BookID)
	assert.Equal(t, 2, result.LoanCount)
}

func Test_QueryHandler_Handle_StoreFailure(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()
	store.FailWith(context.DeadlineExceeded)
	handler := overduebooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), overduebooks.BuildQuery("E001", time.Now()))

	// assert
	assert.ErrorIs(t, err, shell.ErrBackendUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, shell.OutcomeBackendUnavailable, result.GetOutcome())
	assert.NotErrorIs(t, err, recordstore.ErrDocumentNotFound)
}
