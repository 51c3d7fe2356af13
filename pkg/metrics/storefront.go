package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// StorefrontMetrics records cart, catalog cache, checkout and sweeper activity.
type StorefrontMetrics struct {
	cartOps        *prometheus.CounterVec
	activeCarts    prometheus.Gauge
	cacheLookups   *prometheus.CounterVec
	checkoutTime   prometheus.Histogram
	checkouts      *prometheus.CounterVec
	sweepDuration  prometheus.Histogram
	sweepEvictions prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "urbanx_cart_operations_total",
			Help: "Cart mutations by operation and result.",
		}, []string{"op", "result"}),
		activeCarts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urbanx_active_carts",
			Help: "Carts currently held in memory.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "urbanx_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by outcome.",
		}, []string{"outcome"}),
		checkoutTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "urbanx_checkout_duration_seconds",
			Help:    "Duration of checkout submissions in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "urbanx_checkouts_total",
			Help: "Checkout submissions by result.",
		}, []string{"result"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "urbanx_cart_sweep_duration_seconds",
			Help:    "Duration of idle cart sweeps in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		sweepEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "urbanx_cart_sweep_evictions_total",
			Help: "Carts evicted by the idle sweeper.",
		}),
	}
	reg.MustRegister(m.cartOps, m.activeCarts, m.cacheLookups, m.checkoutTime, m.checkouts, m.sweepDuration, m.sweepEvictions)
	return m
}

// IncCartOp counts a cart mutation.
func (m *StorefrontMetrics) IncCartOp(op string, err error) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op), resultLabel(err)).Inc()
}

func (m *StorefrontMetrics) SetActiveCarts(n int) {
	if m == nil || m.activeCarts == nil {
		return
	}
	m.activeCarts.Set(float64(n))
}

// IncCacheLookup counts a catalog cache lookup; outcome is hit, miss or error.
func (m *StorefrontMetrics) IncCacheLookup(outcome string) {
	if m == nil || m.cacheLookups == nil {
		return
	}
	m.cacheLookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCheckout records a checkout submission and its result.
func (m *StorefrontMetrics) ObserveCheckout(duration time.Duration, err error) {
	if m == nil || m.checkoutTime == nil {
		return
	}
	m.checkoutTime.Observe(duration.Seconds())
	m.checkouts.WithLabelValues(resultLabel(err)).Inc()
}

// ObserveSweep records one idle-cart sweep.
func (m *StorefrontMetrics) ObserveSweep(duration time.Duration, evicted int) {
	if m == nil || m.sweepDuration == nil {
		return
	}
	m.sweepDuration.Observe(duration.Seconds())
	m.sweepEvictions.Add(float64(evicted))
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
