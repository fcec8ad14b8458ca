package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/medicamp-server/internal/access"
)

// deny writes the single response for a rejected request. Callers must
// return its result without invoking the next handler.
func deny(c echo.Context, r access.Reason) error {
	status := http.StatusForbidden
	if r == access.Unauthorized {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, echo.Map{"message": r.Message()})
}
