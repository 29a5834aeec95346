package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/intellib/lending/desk"
	"github.com/AntonStoeckl/intellib/lending/desk/deskhttp"
	"github.com/AntonStoeckl/intellib/lending/shell/config"
	"github.com/AntonStoeckl/intellib/recordstore/oteladapters"
	"github.com/AntonStoeckl/intellib/recordstore/postgresengine"
)

const (
	serviceVersion    = "1.0.0"
	instrumentingName = "github.com/AntonStoeckl/intellib"

	exitOK     = 0
	exitNotice = 1
	exitUsage  = 2
	exitFatal  = 3

	logMsgObservabilityFailed = "could not set up observability, continuing without it"
	logMsgShutdownFailed      = "observability shutdown failed"
	logMsgMigrateFailed       = "migration failed"
	logMsgMigrateNoBackend    = "cannot migrate without a record store"
	logMsgDeskFailed          = "could not create the lending desk"
	logMsgServeFailed         = "http front-end failed"
	logMsgFormFailed          = "reading the form input failed"
	logAttrError              = "error"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

//nolint:funlen
func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if flags.ObservabilityEnabled {
		cfg.Observability.Enabled = true
	}

	logger := config.NewLogger(cfg.Log, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var storeOptions []postgresengine.Option
	deskOptions := []desk.Option{
		desk.WithActionTimeout(cfg.Desk.ActionTimeout),
		desk.WithBarcodeSource(desk.FixedBarcode(cfg.Desk.Barcode)),
		desk.WithLogger(logger),
	}

	if cfg.Observability.Enabled {
		providers, obsErr := config.NewObservabilityProviders(ctx, cfg.Observability, serviceVersion)
		if obsErr != nil {
			logger.Warn(logMsgObservabilityFailed, logAttrError, obsErr.Error())
		} else {
			defer func() {
				if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
					logger.Warn(logMsgShutdownFailed, logAttrError, shutdownErr.Error())
				}
			}()

			contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())
			metrics := oteladapters.NewMetricsCollector(otel.Meter(instrumentingName))
			tracing := oteladapters.NewTracingCollector(otel.Tracer(instrumentingName))

			storeOptions = append(storeOptions,
				postgresengine.WithContextualLogger(contextualLogger),
				postgresengine.WithMetrics(metrics),
				postgresengine.WithTracing(tracing),
			)
			deskOptions = append(deskOptions,
				desk.WithContextualLogger(contextualLogger),
				desk.WithMetrics(metrics),
				desk.WithTracing(tracing),
			)
		}
	} else {
		storeOptions = append(storeOptions, postgresengine.WithLogger(logger))
	}

	conn := config.Connect(ctx, cfg.Database, logger, storeOptions...)
	defer conn.Close()

	if flags.Migrate {
		return migrate(conn, cfg.Database.Schema, logger)
	}

	d, err := desk.New(conn.Backend, deskOptions...)
	if err != nil {
		logger.Error(logMsgDeskFailed, logAttrError, err.Error())
		return exitFatal
	}

	switch {
	case flags.Serve != "":
		if err = deskhttp.Serve(ctx, deskhttp.NewServer(d, logger), flags.Serve, logger); err != nil {
			logger.Error(logMsgServeFailed, logAttrError, err.Error())
			return exitFatal
		}

		return exitOK

	case flags.Action != "":
		return runOneShot(ctx, d, flags, stdout)

	default:
		if err = runForm(ctx, d, stdin, stdout); err != nil {
			logger.Error(logMsgFormFailed, logAttrError, err.Error())
			return exitFatal
		}

		return exitOK
	}
}

func migrate(conn *config.Connection, schema string, logger *slog.Logger) int {
	if !conn.Backend.Available() {
		logger.Error(logMsgMigrateNoBackend, logAttrError, conn.Backend.Err().Error())
		return exitFatal
	}

	if err := postgresengine.Migrate(conn.DB, schema, logger); err != nil {
		logger.Error(logMsgMigrateFailed, logAttrError, err.Error())
		return exitFatal
	}

	return exitOK
}
