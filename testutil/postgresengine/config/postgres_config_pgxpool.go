package config

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	testMaxConnections    = int32(10)
	testMinConnections    = int32(2)
	testMaxConnLifetime   = time.Hour
	testMaxConnIdleTime   = time.Minute * 5
	testHealthCheckPeriod = time.Minute
	testConnectTimeout    = time.Second * 5
)

// PostgresPGXPoolSingleConfig creates a pgxpool.Config for the test database.
func PostgresPGXPoolSingleConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresSingleDSN())
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the read replica of the test database.
func PostgresPGXPoolReplicaConfig() *pgxpool.Config {
	return pgxPoolConfig(PostgresReplicaDSN())
}

func pgxPoolConfig(dsn string) *pgxpool.Config {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("Failed to create a config, error: ", err)
	}

	dbConfig.MaxConns = testMaxConnections
	dbConfig.MinConns = testMinConnections
	dbConfig.MaxConnLifetime = testMaxConnLifetime
	dbConfig.MaxConnIdleTime = testMaxConnIdleTime
	dbConfig.HealthCheckPeriod = testHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = testConnectTimeout

	return dbConfig
}
