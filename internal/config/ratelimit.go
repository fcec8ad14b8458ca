package config

import (
	"fmt"
	"strings"
	"time"
)

// Rate-limit key strategies. The limiter runs before authentication, so
// buckets can only be keyed by what the request itself carries.
const (
	RateKeyIP      = "ip"
	RateKeyRoute   = "route"
	RateKeyIPRoute = "ip_route"
)

// RateLimit configures the token-bucket limiter. Burst and RefillEvery are
// shorthands that override Capacity and RefillTokens/RefillInterval.
type RateLimit struct {
	Enabled        bool          `env:"ENABLED" envDefault:"true"`
	Capacity       int           `env:"CAPACITY" envDefault:"60"`
	RefillTokens   int           `env:"REFILL_TOKENS" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1s"`
	TTL            time.Duration `env:"TTL" envDefault:"10m"`
	KeyStrategy    string        `env:"KEY_STRATEGY" envDefault:"ip_route"`
	Prefix         string        `env:"PREFIX" envDefault:"rl"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
	Burst          int           `env:"BURST" envDefault:"-1"`
	RefillEvery    time.Duration `env:"REFILL_EVERY"`
}

func (r *RateLimit) normalize() {
	r.KeyStrategy = strings.ToLower(strings.TrimSpace(r.KeyStrategy))
	if r.KeyStrategy == "" {
		r.KeyStrategy = RateKeyIPRoute
	}
	if r.Burst > 0 {
		r.Capacity = r.Burst
	}
	if r.RefillEvery > 0 {
		r.RefillTokens = 1
		r.RefillInterval = r.RefillEvery
	}
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	// keys must outlive a full refill of a few tokens
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
}

func (r RateLimit) validate() error {
	switch r.KeyStrategy {
	case RateKeyIP, RateKeyRoute, RateKeyIPRoute:
		return nil
	}
	return fmt.Errorf("unknown RATE_LIMIT_KEY_STRATEGY %q (want ip, route or ip_route)", r.KeyStrategy)
}
