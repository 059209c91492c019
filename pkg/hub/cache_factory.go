package hub

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
)

// CacheType selects a cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps responses in process.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS shares responses through a JetStream key-value bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures a cache backend.
type CacheConfig struct {
	Type   CacheType
	Memory *MemoryCacheConfig
	NATS   *NATSKVConfig
}

// MemoryCacheConfig configures the memory backend.
type MemoryCacheConfig struct {
	MaxSize int
}

// DefaultCacheConfig returns a memory cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		Memory: &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
	}
}

// NewCacheFromConfig creates a cache backend. A nil config yields the default
// memory cache.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		size := constants.DefaultCacheSize
		if config.Memory != nil {
			size = config.Memory.MaxSize
		}

		return NewMemoryCache(size), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache stores nothing.
type NoOpCache struct{}

// NewNoOpCache creates a no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error { return nil }

func (c *NoOpCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NoOpCache) Clear(ctx context.Context) error { return nil }

func (c *NoOpCache) Has(ctx context.Context, key string) bool { return false }

// CacheBuilder assembles a CacheConfig.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder starts from a memory cache configuration.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{config: DefaultCacheConfig()}
}

// WithType sets the backend.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sets the memory backend size.
func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize}

	return b
}

// WithNATSConfig sets the NATS backend configuration.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// Build creates the configured cache.
func (b *CacheBuilder) Build() (Cache, error) {
	return NewCacheFromConfig(b.config)
}

// CacheChain layers caches; earlier caches are consulted first and refilled
// on a hit further down.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a chain over caches.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{caches: caches}
}

func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for j := range i {
			_ = c.caches[j].Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error { return cache.Set(ctx, key, entry) })
}

func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error { return cache.Delete(ctx, key) })
}

func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error { return cache.Clear(ctx) })
}

func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// each applies fn to every cache and returns the last error.
func (c *CacheChain) each(fn func(Cache) error) error {
	var lastErr error

	for _, cache := range c.caches {
		if err := fn(cache); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
