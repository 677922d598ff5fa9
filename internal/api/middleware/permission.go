package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/pkg/permission"
)

// RequirePermission lets the request through when the caller's role grants
// any of the listed permissions. It must run after Auth.
func RequirePermission(required ...permission.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !permission.HasAny(permission.ForRole(role), required) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
