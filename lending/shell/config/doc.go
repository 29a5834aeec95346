// Package config loads the lending desk configuration and builds the infrastructure it names:
// the PostgreSQL connection behind the record store (pgx pool, database/sql, or sqlx),
// the slog logger, and optionally the OpenTelemetry providers.
//
// Precedence is environment (prefix INTELLIB, dots become underscores) over the YAML file over defaults,
// so INTELLIB_DATABASE_URL sets database.url.
//
// This package is part of the shell (infrastructure) layer.
package config
