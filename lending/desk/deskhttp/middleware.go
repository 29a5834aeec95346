package deskhttp

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	logMsgRequest     = "http request"
	logAttrMethod     = "method"
	logAttrPath       = "path"
	logAttrStatus     = "status"
	logAttrLatencyMS  = "latency_ms"
	logAttrRequestID  = "req_id"
	logAttrRemoteAddr = "ip"

	maxBodySize = "64K"
)

func registerMiddlewares(e *echo.Echo, logger *slog.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(requestLogger(logger))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(c.Request().Context(), level, logMsgRequest,
				slog.String(logAttrMethod, c.Request().Method),
				slog.String(logAttrPath, c.Path()),
				slog.Int(logAttrStatus, status),
				slog.Int64(logAttrLatencyMS, time.Since(start).Milliseconds()),
				slog.String(logAttrRequestID, c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.String(logAttrRemoteAddr, c.RealIP()),
			)

			return nil
		}
	}
}
