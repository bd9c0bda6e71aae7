// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ShoppingListRendersTotal counts downloads by outcome:
	// rendered, empty, too_large, error.
	ShoppingListRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_renders_total",
			Help: "Total number of shopping list download attempts",
		},
		[]string{"outcome"},
	)

	ShoppingListRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_render_duration_seconds",
			Help:    "Time spent aggregating and rendering a shopping list",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ShoppingListLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_lines",
			Help:    "Number of aggregated ingredient lines per rendered list",
			Buckets: []float64{0, 5, 10, 20, 35, 50, 100, 200, 500},
		},
	)
)

func ObserveHTTP(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordShoppingListOutcome(outcome string) {
	ShoppingListRendersTotal.WithLabelValues(outcome).Inc()
}

func ObserveShoppingListRender(lines int, d time.Duration) {
	ShoppingListRenderDuration.Observe(d.Seconds())
	ShoppingListLines.Observe(float64(lines))
}
