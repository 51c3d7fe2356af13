package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
	"github.com/angelmondragon/urbanx-storefront/pkg/redis"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type cacheKeyer interface {
	CatalogProductKey(productID string) string
	CatalogListKey() string
}

type cacheRecorder interface {
	IncCacheLookup(outcome string)
}

// CachedCatalog is a read-through cache in front of another Catalog. Cache
// failures are logged and served from the backing catalog.
type CachedCatalog struct {
	next    Catalog
	store   cacheStore
	keys    cacheKeyer
	ttl     time.Duration
	logg    *logger.Logger
	metrics cacheRecorder
}

// CacheParams wires the cache decorator.
type CacheParams struct {
	Next    Catalog
	Store   cacheStore
	Keys    cacheKeyer
	TTL     time.Duration
	Logger  *logger.Logger
	Metrics cacheRecorder
}

func NewCachedCatalog(params CacheParams) (*CachedCatalog, error) {
	if params.Next == nil {
		return nil, errors.New("backing catalog required")
	}
	if params.Store == nil {
		return nil, errors.New("cache store required")
	}
	if params.Keys == nil {
		return nil, errors.New("cache keyer required")
	}
	if params.TTL <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedCatalog{
		next:    params.Next,
		store:   params.Store,
		keys:    params.Keys,
		ttl:     params.TTL,
		logg:    logg,
		metrics: params.Metrics,
	}, nil
}

func (c *CachedCatalog) Lookup(ctx context.Context, id string) (Product, error) {
	key := c.keys.CatalogProductKey(id)
	var cached Product
	if c.read(ctx, key, &cached) {
		return cached, nil
	}
	product, err := c.next.Lookup(ctx, id)
	if err != nil {
		return Product{}, err
	}
	c.write(ctx, key, product)
	return product, nil
}

func (c *CachedCatalog) ListAll(ctx context.Context) ([]Product, error) {
	key := c.keys.CatalogListKey()
	var cached []Product
	if c.read(ctx, key, &cached) {
		return cached, nil
	}
	products, err := c.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.write(ctx, key, products)
	return products, nil
}

// Invalidate drops the listing and the given product entries.
func (c *CachedCatalog) Invalidate(ctx context.Context, ids ...string) error {
	keys := []string{c.keys.CatalogListKey()}
	for _, id := range ids {
		keys = append(keys, c.keys.CatalogProductKey(id))
	}
	return c.store.Del(ctx, keys...)
}

func (c *CachedCatalog) read(ctx context.Context, key string, dest any) bool {
	raw, err := c.store.Get(ctx, key)
	switch {
	case redis.IsMiss(err):
		c.record(cacheMiss)
		return false
	case err != nil:
		c.record(cacheError)
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache read failed: "+err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.record(cacheError)
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache entry corrupt: "+err.Error())
		return false
	}
	c.record(cacheHit)
	return true
}

func (c *CachedCatalog) write(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache encode failed: "+err.Error())
		return
	}
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache write failed: "+err.Error())
	}
}

func (c *CachedCatalog) record(outcome string) {
	if c.metrics != nil {
		c.metrics.IncCacheLookup(outcome)
	}
}
