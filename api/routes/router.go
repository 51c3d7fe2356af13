package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/urbanx-storefront/api/controllers"
	"github.com/angelmondragon/urbanx-storefront/api/middleware"
	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	"github.com/angelmondragon/urbanx-storefront/internal/checkout"
	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

// Params carries everything the HTTP surface is wired from.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Catalog  catalog.Catalog
	Carts    controllers.CartRegistry
	Checkout checkout.Service
	Metrics  controllers.CartOpRecorder
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
	// Ready lists the dependencies pinged by /health/ready.
	Ready map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Ready))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	cartDeps := controllers.CartDeps{
		Registry: p.Carts,
		Catalog:  p.Catalog,
		Metrics:  p.Metrics,
		Logger:   logg,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(p.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(p.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))
			r.Get("/ping", controllers.PublicPing())

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartDeps))
				r.Delete("/", controllers.CartClear(cartDeps))
				r.Post("/items", controllers.CartAddItem(cartDeps))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(cartDeps))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartDeps))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.CheckoutSubmit(p.Checkout, cartDeps))
				r.Get("/quote", controllers.CheckoutQuote(p.Checkout, cartDeps))
			})
		})
	})

	return r
}
