package config

import (
	"database/sql"

	_ "github.com/lib/pq" // postgres driver
)

const driverPostgres = "postgres"

// OpenSQLDB creates a *sql.DB on the lib/pq driver with the pool settings of cfg.
func OpenSQLDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverPostgres, cfg.URL)
	if err != nil {
		return nil, err
	}

	configureSQLPool(db, cfg)

	return db, nil
}

func configureSQLPool(db *sql.DB, cfg DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}
