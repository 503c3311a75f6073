package provider

import (
	"sync/atomic"

	"github.com/smykla-labs/faultline/pkg/config"
)

// Cache holds the last loaded configuration.
type Cache struct {
	config atomic.Pointer[config.Config]
}

// NewCache creates a new Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached configuration, or nil.
func (c *Cache) Get() *config.Config {
	return c.config.Load()
}

// Set caches cfg.
func (c *Cache) Set(cfg *config.Config) {
	c.config.Store(cfg)
}

// Clear drops the cached configuration.
func (c *Cache) Clear() {
	c.config.Store(nil)
}

// Has reports whether a configuration is cached.
func (c *Cache) Has() bool {
	return c.config.Load() != nil
}
