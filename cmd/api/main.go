package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/urbanx-storefront/api/routes"
	"github.com/angelmondragon/urbanx-storefront/internal/cart"
	"github.com/angelmondragon/urbanx-storefront/internal/checkout"
	pkgcheckout "github.com/angelmondragon/urbanx-storefront/pkg/checkout"
	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	"github.com/angelmondragon/urbanx-storefront/pkg/instance"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
	"github.com/angelmondragon/urbanx-storefront/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	res := &resources{}
	defer func() {
		if cerr := res.Close(); cerr != nil {
			logg.Error(context.Background(), "error releasing resources", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	cat, err := buildCatalog(ctx, cfg, logg, storefrontMetrics, res)
	if err != nil {
		return err
	}

	carts, err := cart.NewRegistry(cart.RegistryParams{
		Logger:        logg,
		Metrics:       storefrontMetrics,
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.JanitorInterval,
		OnCreate: func(sessionID uuid.UUID, store *cart.Store) {
			sctx := logg.WithSessionID(context.Background(), sessionID.String())
			store.Subscribe(func(st cart.State) {
				logg.Debug(logg.WithFields(sctx, map[string]any{
					"version":     st.Version,
					"total_items": st.TotalItems,
					"total_price": st.TotalPrice.StringFixed(2),
				}), "cart.changed")
			})
		},
	})
	if err != nil {
		return err
	}

	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Rates:   pkgcheckout.RatesFromConfig(cfg.Checkout),
		Delay:   cfg.Checkout.Delay,
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"catalog":  cfg.Catalog.Source,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:   cfg,
			Logger:   logg,
			Catalog:  cat,
			Carts:    carts,
			Checkout: checkoutSvc,
			Metrics:  storefrontMetrics,
			Gatherer: registry,
			Ready:    res.ready,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := carts.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
