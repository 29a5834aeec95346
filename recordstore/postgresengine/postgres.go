package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/recordstore"
	"github.com/AntonStoeckl/intellib/recordstore/postgresengine/internal/adapters"
)

const (
	defaultSchema = "public"

	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgBuildDocumentFailed = "failed to build storable document from database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgPingFailed          = "database ping failed"
	logMsgFindCompleted       = "find completed"
	logMsgFindOneCompleted    = "find one completed"
	logMsgDocumentInserted    = "document inserted"
	logMsgDocumentUpdated     = "document updated"
	logMsgDocumentDeleted     = "document deleted"
	logMsgNoDocumentMatched   = "no document matched"
	logMsgSumCompleted        = "sum completed"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "recordstore operation: "

	logAttrError         = "error"
	logAttrQuery         = "query"
	logAttrCollection    = "collection"
	logAttrDocumentCount = "document_count"
	logAttrDocumentID    = "document_id"
	logAttrField         = "field"
	logAttrTotal         = "total"
	logAttrDurationMS    = "duration_ms"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// Store is the PostgreSQL record store.
// It is safe for concurrent use as long as the underlying connection is.
type Store struct {
	db               adapters.DBAdapter
	schema           string
	logger           recordstore.Logger
	contextualLogger recordstore.ContextualLogger
	metricsCollector recordstore.MetricsCollector
	tracingCollector recordstore.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Reads run on the replica when the context carries recordstore.EventualConsistency.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:     db,
		schema: defaultSchema,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Ping checks whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	obs, ctx := s.startOperation(ctx, operationPing, "")

	if err := s.db.Ping(ctx); err != nil {
		s.logError(ctx, logMsgPingFailed, err)
		obs.finishError(errorTypePing)

		return errors.Join(recordstore.ErrPingFailed, err)
	}

	obs.finishSuccess(nil, -1)

	return nil
}

// Find returns all documents of the collection selected by match, in insertion order.
// No match is not an error, an empty slice is returned.
func (s *Store) Find(
	ctx context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) (recordstore.StorableDocuments, error) {

	obs, ctx := s.startOperation(ctx, operationFind, collection)

	documents, err := s.queryDocuments(ctx, obs, collection, match, false)
	if err != nil {
		return nil, err
	}

	s.logOperation(ctx, logMsgFindCompleted,
		logAttrCollection, collection,
		logAttrDocumentCount, len(documents),
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(nil, len(documents))

	return documents, nil
}

// FindOne returns the first document of the collection selected by match.
// It returns recordstore.ErrDocumentNotFound if nothing matched.
func (s *Store) FindOne(
	ctx context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) (recordstore.StorableDocument, error) {

	obs, ctx := s.startOperation(ctx, operationFindOne, collection)

	documents, err := s.queryDocuments(ctx, obs, collection, match, true)
	if err != nil {
		return recordstore.StorableDocument{}, err
	}

	if len(documents) == 0 {
		s.logOperation(ctx, logMsgNoDocumentMatched, logAttrCollection, collection)
		obs.finishNotFound()

		return recordstore.StorableDocument{}, recordstore.ErrDocumentNotFound
	}

	s.logOperation(ctx, logMsgFindOneCompleted,
		logAttrCollection, collection,
		logAttrDocumentID, documents[0].ID.String(),
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(nil, 1)

	return documents[0], nil
}

// InsertOne appends a document to the collection.
func (s *Store) InsertOne(
	ctx context.Context,
	collection recordstore.CollectionName,
	document recordstore.StorableDocument,
) error {

	obs, ctx := s.startOperation(ctx, operationInsert, collection)

	sqlQuery, buildErr := s.buildInsertQuery(collection, document)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrCollection, collection)
		obs.finishError(errorTypeBuildQuery)

		return buildErr
	}

	if _, err := s.executeWrite(ctx, obs, sqlQuery, operationInsert); err != nil {
		return err
	}

	s.logOperation(ctx, logMsgDocumentInserted,
		logAttrCollection, collection,
		logAttrDocumentID, document.ID.String(),
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(map[string]string{spanAttrDocumentID: document.ID.String()}, 1)

	return nil
}

// UpdateOne applies the field update to the first document of the collection selected by match.
// It returns recordstore.ErrDocumentNotFound if nothing matched.
func (s *Store) UpdateOne(
	ctx context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
	update recordstore.FieldUpdate,
) error {

	obs, ctx := s.startOperation(ctx, operationUpdate, collection)

	sqlQuery, buildErr := s.buildUpdateOneQuery(collection, match, update)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrCollection, collection)
		obs.finishError(errorTypeBuildQuery)

		return buildErr
	}

	rowsAffected, err := s.executeWrite(ctx, obs, sqlQuery, operationUpdate)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgNoDocumentMatched, logAttrCollection, collection)
		obs.finishNotFound()

		return recordstore.ErrDocumentNotFound
	}

	s.logOperation(ctx, logMsgDocumentUpdated,
		logAttrCollection, collection,
		logAttrField, update.Field(),
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(map[string]string{spanAttrField: update.Field()}, int(rowsAffected))

	return nil
}

// DeleteOne removes the first document of the collection selected by match.
// It returns recordstore.ErrDocumentNotFound if nothing matched.
func (s *Store) DeleteOne(
	ctx context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
) error {

	obs, ctx := s.startOperation(ctx, operationDelete, collection)

	sqlQuery, buildErr := s.buildDeleteOneQuery(collection, match)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrCollection, collection)
		obs.finishError(errorTypeBuildQuery)

		return buildErr
	}

	rowsAffected, err := s.executeWrite(ctx, obs, sqlQuery, operationDelete)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgNoDocumentMatched, logAttrCollection, collection)
		obs.finishNotFound()

		return recordstore.ErrDocumentNotFound
	}

	s.logOperation(ctx, logMsgDocumentDeleted,
		logAttrCollection, collection,
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(nil, int(rowsAffected))

	return nil
}

// Sum adds up the numeric top-level field over all documents of the collection selected by match.
// Documents without the field are skipped, no match sums to zero.
// The total is computed as numeric in PostgreSQL and scanned without a float round trip.
func (s *Store) Sum(
	ctx context.Context,
	collection recordstore.CollectionName,
	match recordstore.Match,
	field string,
) (decimal.Decimal, error) {

	obs, ctx := s.startOperation(ctx, operationSum, collection)

	sqlQuery, buildErr := s.buildSumQuery(collection, match, field)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrCollection, collection)
		obs.finishError(errorTypeBuildQuery)

		return decimal.Zero, buildErr
	}

	rows, err := s.executeQuery(ctx, obs, sqlQuery, operationSum)
	if err != nil {
		return decimal.Zero, err
	}
	defer s.closeRows(ctx, rows)

	total := decimal.Zero

	if rows.Next() {
		if scanErr := rows.Scan(&total); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			obs.finishError(errorTypeRowScan)

			return decimal.Zero, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, rowsErr)
		obs.finishError(errorTypeDatabaseQuery)

		return decimal.Zero, errors.Join(recordstore.ErrQueryingDocumentsFailed, rowsErr)
	}

	s.logOperation(ctx, logMsgSumCompleted,
		logAttrCollection, collection,
		logAttrField, field,
		logAttrTotal, total.String(),
		logAttrDurationMS, toMilliseconds(obs.elapsed()))

	obs.finishSuccess(map[string]string{spanAttrField: field}, -1)

	return total, nil
}

// queryDocuments builds and runs the select query and scans the resulting documents.
func (s *Store) queryDocuments(
	ctx context.Context,
	obs *operationObserver,
	collection recordstore.CollectionName,
	match recordstore.Match,
	firstOnly bool,
) (recordstore.StorableDocuments, error) {

	sqlQuery, buildErr := s.buildSelectQuery(collection, match, firstOnly)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrCollection, collection)
		obs.finishError(errorTypeBuildQuery)

		return nil, buildErr
	}

	rows, err := s.executeQuery(ctx, obs, sqlQuery, obs.operation)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	return s.scanDocuments(ctx, obs, rows)
}

// executeQuery runs a query and logs it with its duration.
func (s *Store) executeQuery(
	ctx context.Context,
	obs *operationObserver,
	sqlQuery sqlQueryString,
	action string,
) (adapters.DBRows, error) {

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		obs.finishError(errorTypeDatabaseQuery)

		return nil, errors.Join(recordstore.ErrQueryingDocumentsFailed, queryErr)
	}

	return rows, nil
}

// executeWrite runs a write statement and returns the number of affected rows.
func (s *Store) executeWrite(
	ctx context.Context,
	obs *operationObserver,
	sqlQuery sqlQueryString,
	action string,
) (rowsAffectedInt64, error) {

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		obs.finishError(errorTypeDatabaseExec)

		return 0, errors.Join(recordstore.ErrWritingDocumentFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		obs.finishError(errorTypeRowsAffected)

		return 0, errors.Join(recordstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// scanDocuments converts the database rows to storable documents.
func (s *Store) scanDocuments(
	ctx context.Context,
	obs *operationObserver,
	rows adapters.DBRows,
) (recordstore.StorableDocuments, error) {

	documents := make(recordstore.StorableDocuments, 0)

	for rows.Next() {
		var rawID, rawDocument string

		if scanErr := rows.Scan(&rawID, &rawDocument); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			obs.finishError(errorTypeRowScan)

			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		id, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			s.logError(ctx, logMsgBuildDocumentFailed, parseErr, logAttrDocumentID, rawID)
			obs.finishError(errorTypeRowScan)

			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, parseErr)
		}

		document, buildErr := recordstore.BuildStorableDocument(id, []byte(rawDocument))
		if buildErr != nil {
			s.logError(ctx, logMsgBuildDocumentFailed, buildErr, logAttrDocumentID, rawID)
			obs.finishError(errorTypeRowScan)

			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, buildErr)
		}

		documents = append(documents, document)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, rowsErr)
		obs.finishError(errorTypeDatabaseQuery)

		return nil, errors.Join(recordstore.ErrQueryingDocumentsFailed, rowsErr)
	}

	return documents, nil
}

// closeRows closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
