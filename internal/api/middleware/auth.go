package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxEmployeeID = "employee_id"
	CtxUsername   = "username"
	CtxRole       = "role"
)

// Auth validates the bearer JWT and injects the caller's identity into the
// context. The role claim is trusted as issued: it is a snapshot taken at
// login, so a role change only takes effect once the employee logs in again.
// That staleness window (the token lifetime) is a deliberate trade-off to
// avoid a storage round-trip on every request.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			sub, _ := claims["sub"].(string)
			id, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing caller identity")
			}

			c.Set(CtxEmployeeID, id)
			c.Set(CtxUsername, claims["username"])
			c.Set(CtxRole, claims["role"])

			return next(c)
		}
	}
}
