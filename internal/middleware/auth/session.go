// Package auth guards routes on the storefront session.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/state"
)

const (
	CtxUsername = "username"
	CtxIsAdmin  = "is_admin"
)

// RequireAdmin lets the request through only for a signed-in admin.
func RequireAdmin(app *state.App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context())

			u := app.CurrentUser
			if u == nil {
				l.Warn("auth_rejected", "status", http.StatusUnauthorized, "reason", "no session")
				return echo.NewHTTPError(http.StatusUnauthorized, "You must be logged in.")
			}
			if !u.IsAdmin {
				l.Warn("auth_rejected", "status", http.StatusForbidden, "reason", "not admin", "username", u.Username)
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set(CtxUsername, u.Username)
			c.Set(CtxIsAdmin, u.IsAdmin)
			return next(c)
		}
	}
}
