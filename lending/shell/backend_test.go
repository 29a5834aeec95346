package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

func Test_ConnectedBackend_ExposesStore(t *testing.T) {
	// arrange
	store := testdoubles.NewRecordStoreFake()

	// act
	backend := shell.NewConnectedBackend(store)

	// assert
	assert.True(t, backend.Available())
	assert.NoError(t, backend.Err())
	assert.Same(t, store, backend.Store())
}

func Test_UnavailableBackend_RefusesEveryOperation(t *testing.T) {
	// arrange
	cause := errors.New("dial tcp: connection refused")
	backend := shell.NewUnavailableBackend(cause)
	store := backend.Store()
	ctx := context.Background()
	match := recordstore.MatchAny()

	// act
	_, findErr := store.Find(ctx, shell.CollectionBookIssue, match)
	_, findOneErr := store.FindOne(ctx, shell.CollectionBookIssue, match)
	insertErr := store.InsertOne(ctx, shell.CollectionBookIssue, recordstore.StorableDocument{})
	updateErr := store.UpdateOne(ctx, shell.CollectionBookIssue, match, recordstore.FieldUpdate{})
	deleteErr := store.DeleteOne(ctx, shell.CollectionBookIssue, match)
	_, sumErr := store.Sum(ctx, shell.CollectionBookIssue, match, shell.FieldFine)
	pingErr := store.Ping(ctx)

	// assert
	assert.False(t, backend.Available())
	assert.ErrorIs(t, backend.Err(), cause)

	for _, err := range []error{findErr, findOneErr, insertErr, updateErr, deleteErr, sumErr, pingErr} {
		assert.ErrorIs(t, err, shell.ErrBackendUnavailable)
	}
}

func Test_UnavailableBackend_WithoutCause(t *testing.T) {
	// act
	backend := shell.NewUnavailableBackend(nil)

	// assert
	assert.Equal(t, shell.ErrBackendUnavailable, backend.Err())
}
