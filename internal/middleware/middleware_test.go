package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/access"
	"github.com/iliyamo/medicamp-server/internal/config"
	"github.com/iliyamo/medicamp-server/internal/token"
)

type staticRoles map[string]bool

func (s staticRoles) IsAdmin(_ context.Context, email string) bool { return s[email] }

type harness struct {
	e      *echo.Echo
	tokens *token.Service
	calls  int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{e: echo.New(), tokens: token.NewService("test-secret", time.Hour)}
}

func (h *harness) do(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func (h *harness) issue(t *testing.T, email string) string {
	t.Helper()
	raw, err := h.tokens.IssueToken(token.Claims{Email: email})
	require.NoError(t, err)
	return raw
}

func TestRequireAuth_MissingToken(t *testing.T) {
	h := newHarness(t)
	h.e.GET("/x", func(c echo.Context) error { h.calls++; return nil }, RequireAuth(h.tokens))

	rec := h.do(t, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
	assert.Zero(t, h.calls)

	rec = h.do(t, "/x", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.calls)
}

func TestRequireSelf(t *testing.T) {
	h := newHarness(t)
	h.e.GET("/users/admin/:email", func(c echo.Context) error {
		h.calls++
		return c.NoContent(http.StatusOK)
	}, RequireAuth(h.tokens), RequireSelf("email"))

	rec := h.do(t, "/users/admin/pat@example.com", h.issue(t, "pat@example.com"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, "/users/admin/other@example.com", h.issue(t, "pat@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())
	assert.Equal(t, 1, h.calls)
}

func TestRequireAdmin(t *testing.T) {
	roles := staticRoles{"root@example.com": true}
	h := newHarness(t)
	h.e.GET("/users", func(c echo.Context) error {
		h.calls++
		return c.NoContent(http.StatusOK)
	}, RequireAuth(h.tokens), RequireAdmin(roles))

	assert.Equal(t, http.StatusOK, h.do(t, "/users", h.issue(t, "root@example.com")).Code)

	rec := h.do(t, "/users", h.issue(t, "pat@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, "/users", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, h.calls)
}

func TestRequireAdmin_WithoutAuthIsUnauthorized(t *testing.T) {
	e := echo.New()
	e.GET("/users", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAdmin(staticRoles{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPrincipalReachesHandler(t *testing.T) {
	h := newHarness(t)
	h.e.GET("/me", func(c echo.Context) error {
		p, ok := access.FromContext(c.Request().Context())
		require.True(t, ok)
		return c.String(http.StatusOK, p.Email())
	}, RequireAuth(h.tokens))

	rec := h.do(t, "/me", h.issue(t, "pat@example.com"))
	assert.Equal(t, "pat@example.com", rec.Body.String())
}

func TestTokenBucket_LocalFallback(t *testing.T) {
	cfg := config.RateLimit{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, nil, zap.NewNop()))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = rec.Code
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestTokenBucket_Disabled(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimit{Enabled: false}, nil, zap.NewNop()))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/camps", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/camps")

	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(config.RateLimit{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:route:GET /camps", buildRateKey(config.RateLimit{Prefix: "rl", KeyStrategy: "route"}, c))
	assert.Equal(t, "rl:ip:10.0.0.1:route:GET /camps", buildRateKey(config.RateLimit{Prefix: "rl"}, c))
}

func TestCacheKey_GroupedByRoute(t *testing.T) {
	e := echo.New()
	cfg := config.Cache{Prefix: "cache", KeyStrategy: "route_query"}

	mk := func(id string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/camps/"+id, nil), httptest.NewRecorder())
		c.SetPath("/camps/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return cacheKeyFrom(cfg, c)
	}
	a, b := mk("a"), mk("b")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "cache:camps:")
	assert.Equal(t, "stats", cacheGroup("/stats"))
	assert.Equal(t, "root", cacheGroup("/"))
}

func TestCachePayloadRejectsTruncated(t *testing.T) {
	bs, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`[]`))
	require.NoError(t, err)

	status, hdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	assert.Equal(t, "[]", string(body))

	_, _, _, ok = decodePayload(bs[:6])
	assert.False(t, ok)
	_, _, _, ok = decodePayload(bs[:10])
	assert.False(t, ok)
}

func TestRedisCache_NilClientPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(config.Cache{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, zap.NewNop()))
	e.GET("/stats", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"users": 1}) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
