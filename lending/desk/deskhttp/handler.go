package deskhttp

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/intellib/lending/desk"
)

const (
	msgInvalidJSON     = "invalid JSON"
	msgValidationError = "validation error"

	healthOK       = "ok"
	healthDegraded = "degraded"
)

type handler struct {
	desk Desk
}

func (h *handler) action(run func(ctx context.Context, req ActionRequest) desk.Notice) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ActionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidJSON})
		}

		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": msgValidationError,
				"errors":  err.Error(),
			})
		}

		notice := run(c.Request().Context(), req)

		return c.JSON(StatusFor(notice), toResponse(notice))
	}
}

// health answers 200 in both modes; a degraded desk still serves its error notices.
func (h *handler) health(c echo.Context) error {
	status := healthOK
	if !h.desk.BackendAvailable() {
		status = healthDegraded
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":            status,
		"backend_available": h.desk.BackendAvailable(),
	})
}
