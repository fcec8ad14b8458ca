package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "MedicDB", cfg.Mongo.DB)
	assert.Equal(t, 365*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174", "https://medic-61958.web.app"}, cfg.CORS.Origins)
	assert.Equal(t, map[string]bool{"GET": true}, cfg.Cache.Methods)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, RateKeyIPRoute, cfg.RateLimit.KeyStrategy)
	assert.False(t, cfg.Queue.Enabled)
	assert.False(t, cfg.IsProd())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("STRIPE_CURRENCY", "EUR")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("QUEUE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, "eur", cfg.Stripe.Currency)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Cache.Methods)
	assert.Equal(t, "cache:6380", cfg.Redis.Address())
	assert.True(t, cfg.Queue.Enabled)
}

func TestLoad_RejectsPerUserRateKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route")

	_, err := Load()
	require.ErrorContains(t, err, "RATE_LIMIT_KEY_STRATEGY")

	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "Route")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RateKeyRoute, cfg.RateLimit.KeyStrategy)
}

func TestRateLimitNormalize(t *testing.T) {
	r := RateLimit{Capacity: 0, RefillTokens: 0, RefillInterval: 0, TTL: time.Second, Burst: 10, RefillEvery: 2 * time.Second}
	r.normalize()

	assert.Equal(t, 10, r.Capacity)
	assert.Equal(t, 1, r.RefillTokens)
	assert.Equal(t, 2*time.Second, r.RefillInterval)
	assert.Equal(t, 10*time.Second, r.TTL)

	r = RateLimit{Burst: -1}
	r.normalize()
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, time.Second, r.RefillInterval)
}
