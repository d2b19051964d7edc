// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector on its own prometheus registry, so tests
// can create as many as they like.
type Registry struct {
	reg *prometheus.Registry

	LedgerMutations      *prometheus.CounterVec
	AchievementsUnlocked *prometheus.CounterVec
	ExchangeFetches      *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

// New creates a registry with all collectors registered. Go runtime and
// process collectors are included.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		LedgerMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutations_total",
				Help: "Total number of committed ledger mutations by operation",
			},
			[]string{"operation"},
		),

		AchievementsUnlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_achievements_unlocked_total",
				Help: "Total number of achievements unlocked",
			},
			[]string{"achievement"},
		),

		ExchangeFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_fetches_total",
				Help: "Exchange rate lookups by result (success, cached, error)",
			},
			[]string{"result"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
	}

	r.reg.MustRegister(
		r.LedgerMutations,
		r.AchievementsUnlocked,
		r.ExchangeFetches,
		r.HTTPRequests,
		r.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveMutation counts a committed ledger operation.
func (r *Registry) ObserveMutation(operation string) {
	r.LedgerMutations.WithLabelValues(operation).Inc()
}

// ObserveUnlocked counts unlocked achievements.
func (r *Registry) ObserveUnlocked(ids ...string) {
	for _, id := range ids {
		r.AchievementsUnlocked.WithLabelValues(id).Inc()
	}
}

// ObserveExchangeFetch counts an exchange lookup.
func (r *Registry) ObserveExchangeFetch(result string) {
	r.ExchangeFetches.WithLabelValues(result).Inc()
}
