// Package adapters provide database adapter implementations for the PostgreSQL record store.
//
// Three PostgreSQL libraries are supported: pgxpool.Pool, sql.DB, and sqlx.DB.
// All of them are exposed through the common DBAdapter interface, so the record store
// runs unchanged on whichever connection type the application already has.
package adapters
