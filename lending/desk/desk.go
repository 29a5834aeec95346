package desk

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/intellib/lending/features/command/issuebook"
	"github.com/AntonStoeckl/intellib/lending/features/command/returnbook"
	"github.com/AntonStoeckl/intellib/lending/features/query/issuedbooks"
	"github.com/AntonStoeckl/intellib/lending/features/query/overduebooks"
	"github.com/AntonStoeckl/intellib/lending/features/query/totalfine"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/lending/shell/observable"
)

const defaultActionTimeout = 10 * time.Second

var (
	ErrNilClock         = errors.New("clock must not be nil")
	ErrNilBarcodeSource = errors.New("barcode source must not be nil")
	ErrInvalidTimeout   = errors.New("action timeout must be positive")
	ErrNoBarcodeScanned = errors.New("no book barcode scanned")
)

type issueBookHandler interface {
	Handle(ctx context.Context, command issuebook.Command) (issuebook.Result, error)
}

type returnBookHandler interface {
	Handle(ctx context.Context, command returnbook.Command) (returnbook.Result, error)
}

type issuedBooksHandler interface {
	Handle(ctx context.Context, query issuedbooks.Query) (issuedbooks.IssuedBooks, error)
}

type overdueBooksHandler interface {
	Handle(ctx context.Context, query overduebooks.Query) (overduebooks.OverdueBooks, error)
}

type totalFineHandler interface {
	Handle(ctx context.Context, query totalfine.Query) (totalfine.TotalFine, error)
}

// Desk runs the five lending desk actions against one backend decided at startup.
// It is safe for concurrent use when its collaborators are.
type Desk struct {
	backend       shell.Backend
	clock         shell.Clock
	barcodes      BarcodeSource
	actionTimeout time.Duration

	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector

	issueBook    issueBookHandler
	returnBook   returnBookHandler
	issuedBooks  issuedBooksHandler
	overdueBooks overdueBooksHandler
	totalFine    totalFineHandler
}

// Option configures a Desk.
type Option func(*Desk) error

// WithClock sets the clock that decides "today"; the default is the system clock.
func WithClock(clock shell.Clock) Option {
	return func(d *Desk) error {
		if clock == nil {
			return ErrNilClock
		}

		d.clock = clock

		return nil
	}
}

// WithBarcodeSource sets where book identifiers come from when an action gets none.
func WithBarcodeSource(source BarcodeSource) Option {
	return func(d *Desk) error {
		if source == nil {
			return ErrNilBarcodeSource
		}

		d.barcodes = source

		return nil
	}
}

// WithActionTimeout bounds every action including all its store calls.
func WithActionTimeout(timeout time.Duration) Option {
	return func(d *Desk) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}

		d.actionTimeout = timeout

		return nil
	}
}

func WithLogger(logger shell.Logger) Option {
	return func(d *Desk) error {
		d.logger = logger
		return nil
	}
}

func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(d *Desk) error {
		d.contextualLogger = logger
		return nil
	}
}

func WithMetrics(collector shell.MetricsCollector) Option {
	return func(d *Desk) error {
		d.metricsCollector = collector
		return nil
	}
}

func WithTracing(collector shell.TracingCollector) Option {
	return func(d *Desk) error {
		d.tracingCollector = collector
		return nil
	}
}

// New creates a Desk over backend. The feature handlers are built on backend.Store()
// and wrapped with the configured observability.
func New(backend shell.Backend, options ...Option) (*Desk, error) {
	d := &Desk{
		backend:       backend,
		clock:         shell.SystemClock{},
		barcodes:      FixedBarcode(DefaultBarcode),
		actionTimeout: defaultActionTimeout,
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	if err := d.wireHandlers(backend.Store()); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Desk) wireHandlers(store shell.RecordStore) error {
	var err error

	d.issueBook, err = observable.NewCommandWrapper[issuebook.Command, issuebook.Result](
		issuebook.NewCommandHandler(store),
		observable.WithCommandMetrics[issuebook.Command, issuebook.Result](d.metricsCollector),
		observable.WithCommandTracing[issuebook.Command, issuebook.Result](d.tracingCollector),
		observable.WithCommandContextualLogging[issuebook.Command, issuebook.Result](d.contextualLogger),
		observable.WithCommandLogging[issuebook.Command, issuebook.Result](d.logger),
	)
	if err != nil {
		return err
	}

	d.returnBook, err = observable.NewCommandWrapper[returnbook.Command, returnbook.Result](
		returnbook.NewCommandHandler(store),
		observable.WithCommandMetrics[returnbook.Command, returnbook.Result](d.metricsCollector),
		observable.WithCommandTracing[returnbook.Command, returnbook.Result](d.tracingCollector),
		observable.WithCommandContextualLogging[returnbook.Command, returnbook.Result](d.contextualLogger),
		observable.WithCommandLogging[returnbook.Command, returnbook.Result](d.logger),
	)
	if err != nil {
		return err
	}

	d.issuedBooks, err = observable.NewQueryWrapper[issuedbooks.Query, issuedbooks.IssuedBooks](
		issuedbooks.NewQueryHandler(store),
		observable.WithQueryMetrics[issuedbooks.Query, issuedbooks.IssuedBooks](d.metricsCollector),
		observable.WithQueryTracing[issuedbooks.Query, issuedbooks.IssuedBooks](d.tracingCollector),
		observable.WithQueryContextualLogging[issuedbooks.Query, issuedbooks.IssuedBooks](d.contextualLogger),
		observable.WithQueryLogging[issuedbooks.Query, issuedbooks.IssuedBooks](d.logger),
	)
	if err != nil {
		return err
	}

	d.overdueBooks, err = observable.NewQueryWrapper[overduebooks.Query, overduebooks.OverdueBooks](
		overduebooks.NewQueryHandler(store),
		observable.WithQueryMetrics[overduebooks.Query, overduebooks.OverdueBooks](d.metricsCollector),
		observable.WithQueryTracing[overduebooks.Query, overduebooks.OverdueBooks](d.tracingCollector),
		observable.WithQueryContextualLogging[overduebooks.Query, overduebooks.OverdueBooks](d.contextualLogger),
		observable.WithQueryLogging[overduebooks.Query, overduebooks.OverdueBooks](d.logger),
	)
	if err != nil {
		return err
	}

	d.totalFine, err = observable.NewQueryWrapper[totalfine.Query, totalfine.TotalFine](
		totalfine.NewQueryHandler(store),
		observable.WithQueryMetrics[totalfine.Query, totalfine.TotalFine](d.metricsCollector),
		observable.WithQueryTracing[totalfine.Query, totalfine.TotalFine](d.tracingCollector),
		observable.WithQueryContextualLogging[totalfine.Query, totalfine.TotalFine](d.contextualLogger),
		observable.WithQueryLogging[totalfine.Query, totalfine.TotalFine](d.logger),
	)

	return err
}

// BackendAvailable reports whether the desk has a record store.
func (d *Desk) BackendAvailable() bool {
	return d.backend.Available()
}
