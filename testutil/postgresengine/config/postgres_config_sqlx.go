package config

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXSingleConfig opens and pings a *sqlx.DB for the test database.
func PostgresSQLXSingleConfig() *sqlx.DB {
	db, err := sqlx.Open("postgres", PostgresSingleDSN())
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	db.SetMaxOpenConns(testMaxOpenConnections)
	db.SetMaxIdleConns(testMaxIdleConnections)
	db.SetConnMaxLifetime(testMaxConnLifetime)
	db.SetConnMaxIdleTime(testMaxConnIdleTime)

	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		log.Fatal("Failed to ping database, error: ", pingErr)
	}

	return db
}
