package config

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXPoolConfig creates a pgxpool.Config for dsn with the pool settings of cfg.
func PGXPoolConfig(cfg DatabaseConfig, dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return poolConfig, nil
}

// OpenPGXPool creates a pool for dsn. The pool connects lazily, so this does not touch the network.
func OpenPGXPool(ctx context.Context, cfg DatabaseConfig, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := PGXPoolConfig(cfg, dsn)
	if err != nil {
		return nil, err
	}

	return pgxpool.NewWithConfig(ctx, poolConfig)
}
