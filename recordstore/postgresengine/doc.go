// Package postgresengine provides a PostgreSQL implementation of the record store.
//
// Every collection is a table holding one JSONB document per row:
//
//	seq        BIGSERIAL PRIMARY KEY   -- insertion order
//	id         UUID NOT NULL UNIQUE
//	document   JSONB NOT NULL
//	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//
// Documents are selected with JSONB containment (document @> '{"field":"value"}'),
// which a GIN index on the document column serves. The tables are created by the
// embedded migrations, see Migrate.
//
// Three database adapters are supported through the internal adapters package:
//   - pgx.Pool (recommended, optionally with a read replica)
//   - database/sql with lib/pq
//   - sqlx
//
// Example usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//
//	documents, err := store.Find(ctx, "book_issue",
//		recordstore.MatchAll(recordstore.P("enrollment_no", "E001")))
//
// The Store logs SQL at debug level and operation summaries at info level.
// Metrics and tracing collectors are optional, see the With... options.
package postgresengine
