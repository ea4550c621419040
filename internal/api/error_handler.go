package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces authorization denial reasons verbatim in the 403 body.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrForbidden):
		// DeniedError carries the human-readable rule that fired.
		var de *domain.DeniedError
		if errors.As(err, &de) {
			return http.StatusForbidden, de.Reason
		}
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrBugNotFound):
		return http.StatusNotFound, domain.ErrBugNotFound.Error()
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, domain.ErrEmployeeNotFound.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "the record was modified by another request; reload and retry"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, domain.ErrUsernameTaken.Error()
	case errors.Is(err, domain.ErrIDMismatch):
		return http.StatusBadRequest, domain.ErrIDMismatch.Error()
	case errors.Is(err, domain.ErrLastAdministrator):
		return http.StatusBadRequest, domain.ErrLastAdministrator.Error()
	case errors.Is(err, domain.ErrEmployeeReferenced):
		return http.StatusBadRequest, domain.ErrEmployeeReferenced.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
