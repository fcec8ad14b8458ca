package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/medicamp-server/internal/access"
)

// RequireAuth validates the Bearer token in the Authorization header and
// stores the resulting principal in the request context. Requests without
// a valid token get 401 and never reach the handler.
func RequireAuth(v access.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization), v)
			if !d.Allowed() {
				return deny(c, d.Reason())
			}
			req := c.Request()
			c.SetRequest(req.WithContext(access.NewContext(req.Context(), d.Principal())))
			return next(c)
		}
	}
}
