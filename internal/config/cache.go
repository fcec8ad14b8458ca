package config

import (
	"strings"
	"time"
)

// Cache defines settings for the response cache middleware. When Enabled is
// false or no Redis client is available, caching is disabled. MethodList is
// the raw CACHE_METHODS value; Methods is its upper-cased set.
type Cache struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	MethodList   []string      `env:"METHODS" envSeparator:"," envDefault:"GET"`
	TTL          time.Duration `env:"TTL" envDefault:"30s"`
	KeyStrategy  string        `env:"KEY_STRATEGY" envDefault:"route_query"`
	Prefix       string        `env:"PREFIX" envDefault:"cache"`
	MaxBodyBytes int           `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	Methods map[string]bool
}

func (c *Cache) normalize() {
	c.Methods = map[string]bool{}
	for _, m := range c.MethodList {
		m = strings.TrimSpace(strings.ToUpper(m))
		if m != "" {
			c.Methods[m] = true
		}
	}
	if c.TTL <= 0 {
		c.TTL = time.Second
	}
}
