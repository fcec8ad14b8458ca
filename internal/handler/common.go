package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
	"github.com/iliyamo/medicamp-server/internal/token"
)

// storeTimeout bounds the store and provider work of one request.
const storeTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// pathID is the single place a path id is parsed.
func pathID(c echo.Context, name string) (model.ID, error) {
	return model.ParseID(c.Param(name))
}

// pathValue returns the unescaped path parameter name.
func pathValue(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// nullable writes v, or JSON null when err is model.ErrNotFound.
func nullable[T any](c echo.Context, log *zap.Logger, v T, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return fail(c, log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// fail maps err onto a status and writes {message}. Unclassified errors
// are logged and hidden behind a generic 500.
func fail(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		return message(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, service.ErrValidation), errors.Is(err, token.ErrMissingEmail):
		return message(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrDuplicateEmail):
		return message(c, http.StatusConflict, "email already in use")
	case errors.Is(err, service.ErrProvider):
		log.Warn("payment provider failure", zap.String("path", c.Path()), zap.Error(err))
		return message(c, http.StatusBadGateway, "payment provider error")
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("request timed out", zap.String("path", c.Path()), zap.Error(err))
		return message(c, http.StatusGatewayTimeout, "request timed out")
	default:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return message(c, http.StatusInternalServerError, "internal server error")
	}
}

// HTTPErrorHandler renders errors that escape handlers and middleware
// (unknown routes, bad bodies, panics recovered by echo) as {message}.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
			if he.Code >= http.StatusInternalServerError {
				log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			_ = message(c, he.Code, msg)
			return
		}
		_ = fail(c, log, err)
	}
}

func badBody(c echo.Context) error {
	return message(c, http.StatusBadRequest, "invalid body")
}
