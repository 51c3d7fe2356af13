package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/angelmondragon/urbanx-storefront/api/controllers"
	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	"github.com/angelmondragon/urbanx-storefront/pkg/db"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
	"github.com/angelmondragon/urbanx-storefront/pkg/metrics"
	"github.com/angelmondragon/urbanx-storefront/pkg/migrate"
	"github.com/angelmondragon/urbanx-storefront/pkg/redis"
)

// resources tracks what main has to release on shutdown.
type resources struct {
	closers []namedCloser
	ready   map[string]controllers.Pinger
}

type namedCloser struct {
	name string
	io.Closer
}

func (r *resources) add(name string, c io.Closer, p controllers.Pinger) {
	r.closers = append(r.closers, namedCloser{name: name, Closer: c})
	if r.ready == nil {
		r.ready = map[string]controllers.Pinger{}
	}
	r.ready[name] = p
}

// Close releases resources in reverse order of acquisition.
func (r *resources) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		c := r.closers[i]
		if cerr := c.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close %s: %w", c.name, cerr))
		}
	}
	return err
}

// buildCatalog wires the configured product source, fronted by the redis
// cache when redis is configured.
func buildCatalog(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.StorefrontMetrics, res *resources) (catalog.Catalog, error) {
	var cat catalog.Catalog
	switch cfg.Catalog.Source {
	case config.CatalogSourceSQL:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		res.add("db", dbClient, dbClient)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return nil, fmt.Errorf("dev migrations: %w", err)
		}
		cat = catalog.NewRepository(dbClient.DB())
	default:
		mem, err := catalog.NewMemoryCatalog(catalog.Fixtures())
		if err != nil {
			return nil, fmt.Errorf("load fixture catalog: %w", err)
		}
		cat = mem
	}

	if !cfg.Redis.Enabled() {
		return cat, nil
	}
	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap redis: %w", err)
	}
	res.add("redis", redisClient, redisClient)

	cached, err := catalog.NewCachedCatalog(catalog.CacheParams{
		Next:    cat,
		Store:   redisClient,
		Keys:    redisClient,
		TTL:     cfg.Catalog.CacheTTL,
		Logger:  logg,
		Metrics: m,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog cache: %w", err)
	}
	return cached, nil
}
