// Package postgreswrapper runs the record store integration tests against each supported PostgreSQL adapter.
//
// The adapter (pgx.pool, sql.db, sqlx.db) is picked from the ADAPTER_TYPE environment variable,
// defaulting to pgx.pool. Creating a wrapper applies the embedded migrations to the test database.
//
// Usage:
//
//	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//	postgreswrapper.CleanUp(t, wrapper)
//
//	store := wrapper.GetStore()
package postgreswrapper
