package middleware

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/medicamp-server/internal/access"
)

// RequireSelf admits a request only when the path parameter param equals
// the authenticated email. It must run after RequireAuth.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := access.FromContext(c.Request().Context())
			if !ok {
				return deny(c, access.Unauthorized)
			}
			target, err := url.PathUnescape(c.Param(param))
			if err != nil {
				return deny(c, access.Forbidden)
			}
			d := access.RequireSelf(access.Allow(p), target)
			if !d.Allowed() {
				return deny(c, d.Reason())
			}
			return next(c)
		}
	}
}
