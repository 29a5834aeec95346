package deskhttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/desk"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

const (
	routeIssued    = "/desk/issued"
	routeDeadlines = "/desk/deadlines"
	routeFine      = "/desk/fine"
	routeIssue     = "/desk/issue"
	routeReturn    = "/desk/return"
	routeHealth    = "/health"

	shutdownTimeout = 10 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second

	logMsgServerStarted = "http front-end started"
	logMsgServerStopped = "http front-end stopped"
	logAttrAddr         = "addr"
)

// Desk is the set of actions the HTTP front-end serves.
type Desk interface {
	CheckIssuedBooks(ctx context.Context, enrollmentInput string) desk.Notice
	CheckDeadlines(ctx context.Context, enrollmentInput string) desk.Notice
	CheckFine(ctx context.Context, enrollmentInput string) desk.Notice
	IssueBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) desk.Notice
	ReturnBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) desk.Notice
	BackendAvailable() bool
}

// NewServer builds the echo instance with middlewares and all desk routes.
func NewServer(d Desk, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	registerMiddlewares(e, logger)

	h := &handler{desk: d}

	e.GET(routeHealth, h.health)
	e.POST(routeIssued, h.action(func(ctx context.Context, req ActionRequest) desk.Notice {
		return d.CheckIssuedBooks(ctx, req.EnrollmentNo)
	}))
	e.POST(routeDeadlines, h.action(func(ctx context.Context, req ActionRequest) desk.Notice {
		return d.CheckDeadlines(ctx, req.EnrollmentNo)
	}))
	e.POST(routeFine, h.action(func(ctx context.Context, req ActionRequest) desk.Notice {
		return d.CheckFine(ctx, req.EnrollmentNo)
	}))
	e.POST(routeIssue, h.action(func(ctx context.Context, req ActionRequest) desk.Notice {
		return d.IssueBook(ctx, req.EnrollmentNo, req.BookID)
	}))
	e.POST(routeReturn, h.action(func(ctx context.Context, req ActionRequest) desk.Notice {
		return d.ReturnBook(ctx, req.EnrollmentNo, req.BookID)
	}))

	return e
}

// Serve runs the front-end on addr until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(logMsgServerStarted, logAttrAddr, addr)
		serveErr <- e.StartServer(srv)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info(logMsgServerStopped, logAttrAddr, addr)

	return nil
}

// StatusFor maps a notice to its HTTP status code.
func StatusFor(notice desk.Notice) int {
	switch {
	case !notice.IsError():
		return http.StatusOK
	case notice.Outcome == shell.OutcomeBackendUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func toResponse(notice desk.Notice) NoticeResponse {
	return NoticeResponse{
		Level:   string(notice.Level),
		Title:   notice.Title,
		Message: notice.Message,
		Outcome: string(notice.Outcome),
	}
}
