package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root greets clients probing the API base URL.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Medic is live now!")
}

// Health is used by load balancers and monitoring to check the process is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
