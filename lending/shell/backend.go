package shell

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStore is the full set of record store operations the lending desk uses.
// Feature slices declare narrower interfaces of their own.
type RecordStore interface {
	Ping(ctx context.Context) error
	Find(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) (recordstore.StorableDocuments, error)
	FindOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) (recordstore.StorableDocument, error)
	InsertOne(ctx context.Context, collection recordstore.CollectionName, document recordstore.StorableDocument) error
	UpdateOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match, update recordstore.FieldUpdate) error
	DeleteOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) error
	Sum(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match, field string) (decimal.Decimal, error)
}

// Backend is the connection state decided once at startup.
// A Backend without store is unavailable and refuses every data operation.
type Backend struct {
	store RecordStore
	cause error
}

func NewConnectedBackend(store RecordStore) Backend {
	return Backend{store: store}
}

// NewUnavailableBackend records why no store could be connected; cause may be nil.
func NewUnavailableBackend(cause error) Backend {
	return Backend{cause: cause}
}

func (b Backend) Available() bool {
	return b.store != nil
}

// Err returns nil for an available backend, otherwise ErrBackendUnavailable joined with the cause.
func (b Backend) Err() error {
	if b.Available() {
		return nil
	}

	if b.cause == nil {
		return ErrBackendUnavailable
	}

	return errors.Join(ErrBackendUnavailable, b.cause)
}

// Store returns the connected store, or an OfflineStore failing every call when unavailable.
func (b Backend) Store() RecordStore {
	if b.Available() {
		return b.store
	}

	return OfflineStore{err: b.Err()}
}

// OfflineStore answers every call with ErrBackendUnavailable.
type OfflineStore struct {
	err error
}

func (s OfflineStore) unavailable() error {
	if s.err == nil {
		return ErrBackendUnavailable
	}

	return s.err
}

func (s OfflineStore) Ping(context.Context) error {
	return s.unavailable()
}

func (s OfflineStore) Find(context.Context, recordstore.CollectionName, recordstore.Match) (recordstore.StorableDocuments, error) {
	return nil, s.unavailable()
}

func (s OfflineStore) FindOne(context.Context, recordstore.CollectionName, recordstore.Match) (recordstore.StorableDocument, error) {
	return recordstore.StorableDocument{}, s.unavailable()
}

func (s OfflineStore) InsertOne(context.Context, recordstore.CollectionName, recordstore.StorableDocument) error {
	return s.unavailable()
}

func (s OfflineStore) UpdateOne(context.Context, recordstore.CollectionName, recordstore.Match, recordstore.FieldUpdate) error {
	return s.unavailable()
}

func (s OfflineStore) DeleteOne(context.Context, recordstore.CollectionName, recordstore.Match) error {
	return s.unavailable()
}

func (s OfflineStore) Sum(context.Context, recordstore.CollectionName, recordstore.Match, string) (decimal.Decimal, error) {
	return decimal.Zero, s.unavailable()
}
