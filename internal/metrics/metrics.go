// Package metrics provides Prometheus metrics for the news API.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsapi",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration measures request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsapi",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ErrorsTotal counts error responses by kind.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsapi",
			Name:      "errors_total",
			Help:      "Total number of error responses",
		},
		[]string{"kind"},
	)

	// ArticlesListed observes the page size of article listings.
	ArticlesListed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newsapi",
			Name:      "articles_listed",
			Help:      "Distribution of article listing page sizes",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)
)

// RecordRequest records one handled request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func RecordRequest(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordError records an error response.
func RecordError(kind string) {
	ErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordListing records the number of articles returned by a listing.
func RecordListing(n int) {
	ArticlesListed.Observe(float64(n))
}
