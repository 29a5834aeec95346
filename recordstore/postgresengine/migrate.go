package postgresengine

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/intellib/recordstore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	logMsgMigrationsApplied = "migrations applied"
	logMsgMigrationsDirty   = "migrations are in a dirty state"
	logAttrVersion          = "version"
	logAttrSchema           = "schema"

	sqlCreateSchema    = "CREATE SCHEMA IF NOT EXISTS "
	sqlSetSearchPath   = "SET search_path TO "
	sqlResetSearchPath = "RESET search_path"
)

var ErrMigrationFailed = errors.New("applying migrations failed")

// Migrate creates or upgrades the collection tables in schema with the embedded migrations.
// An empty schema means "public". The schema is created when it does not exist yet,
// and the migration bookkeeping table lives in the same schema.
// Running it against an up-to-date database is a no-op.
//
// A pgx pool can be migrated through stdlib.OpenDBFromPool(pool).
func Migrate(db *sql.DB, schema string, logger recordstore.Logger) (err error) {
	if db == nil {
		return recordstore.ErrNilDatabaseConnection
	}

	if schema == "" {
		schema = defaultSchema
	}

	ctx := context.Background()

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	// The unqualified DDL of the migration files lands in the first schema of the search_path,
	// so all statements have to run on one dedicated connection.
	conn, err := db.Conn(ctx)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	quotedSchema := pgx.Identifier{schema}.Sanitize()

	if _, err = conn.ExecContext(ctx, sqlCreateSchema+quotedSchema); err != nil {
		_ = conn.Close()
		return errors.Join(ErrMigrationFailed, err)
	}

	if _, err = conn.ExecContext(ctx, sqlSetSearchPath+quotedSchema); err != nil {
		_ = conn.Close()
		return errors.Join(ErrMigrationFailed, err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{SchemaName: schema})
	if err != nil {
		_ = conn.Close()
		return errors.Join(ErrMigrationFailed, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return errors.Join(ErrMigrationFailed, err)
	}

	// the connection goes back to the pool, so it must not keep the search_path
	defer func() {
		_, resetErr := conn.ExecContext(ctx, sqlResetSearchPath)
		sourceErr, closeErr := m.Close()
		if resetErr != nil || sourceErr != nil || closeErr != nil {
			err = errors.Join(err, ErrMigrationFailed, resetErr, sourceErr, closeErr)
		}
	}()

	if upErr := m.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return errors.Join(ErrMigrationFailed, upErr)
	}

	version, dirty, versionErr := m.Version()
	switch {
	case errors.Is(versionErr, migrate.ErrNilVersion):
		version, dirty = 0, false
	case versionErr != nil:
		return errors.Join(ErrMigrationFailed, versionErr)
	}

	if logger != nil {
		if dirty {
			logger.Warn(logMsgMigrationsDirty, logAttrSchema, schema, logAttrVersion, version)
		} else {
			logger.Info(logMsgMigrationsApplied, logAttrSchema, schema, logAttrVersion, version)
		}
	}

	return nil
}
