package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/recordstore/postgresengine"
	"github.com/AntonStoeckl/intellib/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const (
	defaultSchema       = "public"
	truncateCollections = "TRUNCATE TABLE %s, %s RESTART IDENTITY"
	countDocuments      = "SELECT count(*) FROM %s"
)

// Wrapper abstracts over the different adapter types.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Schema() string
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool   *pgxpool.Pool
	store  *postgresengine.Store
	schema string
}

func (w *PGXPoolWrapper) Schema() string {
	return w.schema
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db     *sql.DB
	store  *postgresengine.Store
	schema string
}

func (w *SQLDBWrapper) Schema() string {
	return w.schema
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db     *sqlx.DB
	store  *postgresengine.Store
	schema string
}

func (w *SQLXWrapper) Schema() string {
	return w.schema
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig migrates the test database and creates the wrapper
// for the adapter named by the ADAPTER_TYPE environment variable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	return createWrapper(t, defaultSchema, options...)
}

// CreateWrapperWithSchema is like CreateWrapperWithTestConfig, but migrates the collection tables
// into schema and points the store at it.
func CreateWrapperWithSchema(t testing.TB, schema string, options ...postgresengine.Option) Wrapper {
	return createWrapper(t, schema, append(options, postgresengine.WithSchema(schema))...)
}

func createWrapper(t testing.TB, schema string, options ...postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolSingleConfig())
		require.NoError(t, err, "error connecting to DB pool in test setup")
		require.NoError(t, postgresengine.Migrate(stdlib.OpenDBFromPool(connPool), schema, nil), "error migrating test DB")

		store, err := postgresengine.NewStoreFromPGXPool(connPool, options...)
		require.NoError(t, err, "error creating record store")

		return &PGXPoolWrapper{pool: connPool, store: store, schema: schema}

	case typeSQLDB:
		db := config.PostgresSQLDBSingleConfig()
		require.NoError(t, postgresengine.Migrate(db, schema, nil), "error migrating test DB")

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating record store")

		return &SQLDBWrapper{db: db, store: store, schema: schema}

	case typeSQLXDB:
		db := config.PostgresSQLXSingleConfig()
		require.NoError(t, postgresengine.Migrate(db.DB, schema, nil), "error migrating test DB")

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating record store")

		return &SQLXWrapper{db: db, store: store, schema: schema}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CleanUp empties both collections for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	truncate := fmt.Sprintf(truncateCollections,
		qualified(wrapper, "book_issue"),
		qualified(wrapper, "student_record"))

	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = w.pool.Exec(context.Background(), truncate)

	case *SQLDBWrapper:
		_, err = w.db.Exec(truncate)

	case *SQLXWrapper:
		_, err = w.db.Exec(truncate)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error cleaning up the collections")
}

// CountDocuments returns the number of rows in the given collection table.
func CountDocuments(t testing.TB, wrapper Wrapper, collection string) int {
	query := fmt.Sprintf(countDocuments, qualified(wrapper, collection))

	var cnt int
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		err = w.pool.QueryRow(context.Background(), query).Scan(&cnt)

	case *SQLDBWrapper:
		err = w.db.QueryRow(query).Scan(&cnt)

	case *SQLXWrapper:
		err = w.db.QueryRow(query).Scan(&cnt)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error counting documents")

	return cnt
}

func qualified(wrapper Wrapper, table string) string {
	return pgx.Identifier{wrapper.Schema(), table}.Sanitize()
}
