package testdoubles

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStoreFake is an in-memory record store with the same matching, ordering, and
// "first match" semantics as the PostgreSQL engine.
type RecordStoreFake struct {
	mu          sync.Mutex
	collections map[recordstore.CollectionName]recordstore.StorableDocuments
	failWith    error
	calls       []string
}

func NewRecordStoreFake() *RecordStoreFake {
	return &RecordStoreFake{
		collections: make(map[recordstore.CollectionName]recordstore.StorableDocuments),
	}
}

// FailWith makes every following operation return err, nil restores normal operation.
func (f *RecordStoreFake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failWith = err
}

// Seed inserts a raw JSON document, panicking on invalid input.
func (f *RecordStoreFake) Seed(collection recordstore.CollectionName, payloadJSON string) {
	document, err := recordstore.BuildStorableDocument(uuid.New(), []byte(payloadJSON))
	if err != nil {
		panic(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.collections[collection] = append(f.collections[collection], document)
}

// Documents returns a copy of the collection in insertion order.
func (f *RecordStoreFake) Documents(collection recordstore.CollectionName) recordstore.StorableDocuments {
	f.mu.Lock()
	defer f.mu.Unlock()

	documents := make(recordstore.StorableDocuments, len(f.collections[collection]))
	copy(documents, f.collections[collection])

	return documents
}

// Calls returns the names of all operations called so far.
func (f *RecordStoreFake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *RecordStoreFake) Ping(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "Ping")

	return f.failWith
}

func (f *RecordStoreFake) Find(
	_ context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) (recordstore.StorableDocuments, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "Find")
	if f.failWith != nil {
		return nil, f.failWith
	}

	result := make(recordstore.StorableDocuments, 0)
	for _, idx := range f.matchingIndexes(collection, match) {
		result = append(result, f.collections[collection][idx])
	}

	return result, nil
}

func (f *RecordStoreFake) FindOne(
	_ context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) (recordstore.StorableDocument, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "FindOne")
	if f.failWith != nil {
		return recordstore.StorableDocument{}, f.failWith
	}

	indexes := f.matchingIndexes(collection, match)
	if len(indexes) == 0 {
		return recordstore.StorableDocument{}, recordstore.ErrDocumentNotFound
	}

	return f.collections[collection][indexes[0]], nil
}

func (f *RecordStoreFake) InsertOne(
	_ context.Context,
	collection recordstore.CollectionName,
	document recordstore.StorableDocument,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "InsertOne")
	if f.failWith != nil {
		return f.failWith
	}

	f.collections[collection] = append(f.collections[collection], document)

	return nil
}

func (f *RecordStoreFake) UpdateOne(
	_ context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
	update recordstore.FieldUpdate,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "UpdateOne")
	if f.failWith != nil {
		return f.failWith
	}

	indexes := f.matchingIndexes(collection, match)
	if len(indexes) == 0 {
		return recordstore.ErrDocumentNotFound
	}

	updated, err := update.Apply(f.collections[collection][indexes[0]])
	if err != nil {
		return err
	}

	f.collections[collection][indexes[0]] = updated

	return nil
}

func (f *RecordStoreFake) DeleteOne(
	_ context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "DeleteOne")
	if f.failWith != nil {
		return f.failWith
	}

	indexes := f.matchingIndexes(collection, match)
	if len(indexes) == 0 {
		return recordstore.ErrDocumentNotFound
	}

	documents := f.collections[collection]
	f.collections[collection] = append(documents[:indexes[0]:indexes[0]], documents[indexes[0]+1:]...)

	return nil
}

func (f *RecordStoreFake) Sum(
	_ context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
	field string,
) (decimal.Decimal, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "Sum")
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}

	total := decimal.Zero
	for _, idx := range f.matchingIndexes(collection, match) {
		fields, err := f.collections[collection][idx].Decode()
		if err != nil {
			return decimal.Zero, err
		}

		if value, ok := fields[field].(float64); ok {
			total = total.Add(decimal.NewFromFloat(value))
		}
	}

	return total, nil
}

func (f *RecordStoreFake) matchingIndexes(collection recordstore.CollectionName, match recordstore.Match) []int {
	indexes := make([]int, 0)

	for idx, document := range f.collections[collection] {
		fields, err := document.Decode()
		if err != nil {
			continue
		}

		if match.Matches(fields) {
			indexes = append(indexes, idx)
		}
	}

	return indexes
}
