package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

func TestFail_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: %q", model.ErrInvalidID, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: email is required", service.ErrValidation), http.StatusBadRequest},
		{model.ErrDuplicateEmail, http.StatusConflict},
		{fmt.Errorf("%w: declined", service.ErrProvider), http.StatusBadGateway},
		{fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("dial tcp: refused"), http.StatusInternalServerError},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		_ = fail(c, zap.NewNop(), tc.err)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestFail_HidesInternalDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = fail(c, zap.NewNop(), errors.New("mongo: secret host 10.0.0.3"))
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestHTTPErrorHandler_EchoErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	HTTPErrorHandler(zap.NewNop())(echo.NewHTTPError(http.StatusMethodNotAllowed), c)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Method Not Allowed"}`, rec.Body.String())
}
