package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/medicamp-server/internal/access"
)

// RequireAdmin admits only principals whose stored user has the admin role.
// It must run after RequireAuth; without a principal the request is
// treated as unauthenticated.
func RequireAdmin(roles access.RoleLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := access.FromContext(c.Request().Context())
			if !ok {
				return deny(c, access.Unauthorized)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			d := access.RequireAdmin(ctx, access.Allow(p), roles)
			if !d.Allowed() {
				return deny(c, d.Reason())
			}
			return next(c)
		}
	}
}
