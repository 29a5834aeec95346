package config

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq" // postgres driver
)

const (
	testMaxOpenConnections = 10
	testMaxIdleConnections = 2
)

// PostgresSQLDBSingleConfig opens and pings a *sql.DB for the test database.
func PostgresSQLDBSingleConfig() *sql.DB {
	db, err := sql.Open("postgres", PostgresSingleDSN())
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
