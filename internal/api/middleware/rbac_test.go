package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"administrator allowed", "Administrator", []string{"Administrator"}, http.StatusOK},
		{"tester refused on admin surface", "Tester", []string{"Administrator"}, http.StatusForbidden},
		{"programmer refused on admin surface", "Programmer", []string{"Administrator"}, http.StatusForbidden},
		{"empty role refused", "", []string{"Administrator"}, http.StatusForbidden},
		{"multi-role allow-list", "Tester", []string{"Administrator", "Tester"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != "" {
				c.Set(CtxRole, tt.role)
			}

			mw := RequireRoles(tt.allowed...)
			handler := mw(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			switch tt.want {
			case http.StatusOK:
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
			default:
				he, ok := err.(*echo.HTTPError)
				if !ok || he.Code != tt.want {
					t.Fatalf("expected %d, got %v", tt.want, err)
				}
			}
		})
	}
}
