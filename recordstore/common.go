package recordstore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection is nil")
var ErrEmptySchemaName = errors.New("empty schema name supplied")
var ErrEmptyCollectionName = errors.New("empty collection name supplied")
var ErrEmptyFieldName = errors.New("empty field name supplied")
var ErrInvalidDocumentJSON = errors.New("document json is not a valid json object")
var ErrDocumentNotFound = errors.New("no document matched")

var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingDocumentsFailed = errors.New("querying documents failed")
var ErrWritingDocumentFailed = errors.New("writing document failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrPingFailed = errors.New("pinging the database failed")

// CollectionName is a type alias for string, naming a collection (a table) of documents.
type CollectionName = string
