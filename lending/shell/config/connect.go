package config

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore/postgresengine"
)

const (
	logMsgNoDatabaseURL    = "no database url configured, starting without record store"
	logMsgConnectFailed    = "could not connect to the record store, starting without it"
	logMsgConnected        = "connected to the record store"
	logAttrAdapter         = "adapter"
	logAttrError           = "error"
	logAttrReplica         = "replica"
	logAttrConnectTimeoutS = "connect_timeout_s"
)

var ErrNoDatabaseURL = errors.New("no database url configured")

// Connection holds the backend decided at startup and the resources behind it.
// DB is the database/sql view of the connection used for migrations, nil without backend.
type Connection struct {
	Backend shell.Backend
	DB      *sql.DB
	closers []func()
}

// Close releases the connection resources; it is safe on an unavailable connection.
func (c *Connection) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}

	c.closers = nil
}

// Connect opens the record store with the configured adapter and pings it once within
// cfg.ConnectTimeout. Without URL, or when the ping fails, it logs a warning and returns an
// unavailable backend instead of an error: the desk then refuses every data action.
func Connect(ctx context.Context, cfg DatabaseConfig, logger *slog.Logger, options ...postgresengine.Option) *Connection {
	if cfg.URL == "" {
		logger.Warn(logMsgNoDatabaseURL)
		return &Connection{Backend: shell.NewUnavailableBackend(ErrNoDatabaseURL)}
	}

	if cfg.Schema != "" {
		options = append([]postgresengine.Option{postgresengine.WithSchema(cfg.Schema)}, options...)
	}

	conn, store, err := open(ctx, cfg, options...)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		err = store.Ping(pingCtx)
		cancel()
	}

	if err != nil {
		conn.Close()
		logger.Warn(logMsgConnectFailed, logAttrAdapter, cfg.Adapter, logAttrError, err.Error(),
			logAttrConnectTimeoutS, cfg.ConnectTimeout.Seconds())

		return &Connection{Backend: shell.NewUnavailableBackend(err)}
	}

	logger.Info(logMsgConnected, logAttrAdapter, cfg.Adapter, logAttrReplica, cfg.ReplicaURL != "")
	conn.Backend = shell.NewConnectedBackend(store)

	return conn
}

func open(ctx context.Context, cfg DatabaseConfig, options ...postgresengine.Option) (*Connection, *postgresengine.Store, error) {
	conn := &Connection{}

	switch cfg.Adapter {
	case AdapterSQL:
		db, err := OpenSQLDB(cfg)
		if err != nil {
			return conn, nil, err
		}

		conn.DB = db
		conn.closers = append(conn.closers, func() { _ = db.Close() })

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		return conn, store, err

	case AdapterSQLX:
		db, err := OpenSQLX(cfg)
		if err != nil {
			return conn, nil, err
		}

		conn.DB = db.DB
		conn.closers = append(conn.closers, func() { _ = db.Close() })

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		return conn, store, err

	default:
		pool, err := OpenPGXPool(ctx, cfg, cfg.URL)
		if err != nil {
			return conn, nil, err
		}

		conn.closers = append(conn.closers, pool.Close)

		db := stdlib.OpenDBFromPool(pool)
		conn.DB = db
		conn.closers = append(conn.closers, func() { _ = db.Close() })

		if cfg.ReplicaURL == "" {
			store, storeErr := postgresengine.NewStoreFromPGXPool(pool, options...)
			return conn, store, storeErr
		}

		replica, err := OpenPGXPool(ctx, cfg, cfg.ReplicaURL)
		if err != nil {
			return conn, nil, err
		}

		conn.closers = append(conn.closers, replica.Close)

		store, err := postgresengine.NewStoreFromPGXPoolAndReplica(pool, replica, options...)
		return conn, store, err
	}
}
