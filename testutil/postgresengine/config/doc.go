// Package config provides PostgreSQL connections for the record store integration tests.
//
// It contains factory functions for the three supported adapters (pgx.Pool, sql.DB, sqlx.DB)
// pointing at the local test database, plus a pgx.Pool config for its read replica.
package config
