package config

import (
	"github.com/jmoiron/sqlx"
)

// OpenSQLX creates a *sqlx.DB on the lib/pq driver with the pool settings of cfg.
func OpenSQLX(cfg DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverPostgres, cfg.URL)
	if err != nil {
		return nil, err
	}

	configureSQLPool(db.DB, cfg)

	return db, nil
}
