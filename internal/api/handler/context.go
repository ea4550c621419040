package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devtrack/bug-tracking-system/internal/api/middleware"
	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// ctxCaller extracts the caller identity injected by the Auth middleware and
// fast-fails before any service call: both the numeric id and the role must
// be present, else the token was structurally valid but operationally
// unusable and the request is rejected with 401.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	id, okID := c.Get(middleware.CtxEmployeeID).(int64)
	role, okRole := c.Get(middleware.CtxRole).(string)
	if !okID || !okRole || role == "" {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Caller{ID: id, Role: role}, nil
}
