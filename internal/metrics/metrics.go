package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barter_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "barter_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barter_registrations_total",
		Help: "Count of registration attempts by result",
	}, []string{"result"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barter_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	listingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barter_listings_created_total",
		Help: "Count of successfully created listings",
	})

	discoverQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barter_discover_queries_total",
		Help: "Count of discovery queries by whether a geo filter was applied",
	}, []string{"geo"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncRegistration counts one registration attempt ("ok" or "duplicate").
func IncRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// IncLogin counts one login attempt ("ok" or "invalid").
func IncLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// IncListingCreated counts one published listing.
func IncListingCreated() {
	listingsCreatedTotal.Inc()
}

// IncDiscover counts one discovery query; geoApplied marks whether the
// radius predicate was active.
func IncDiscover(geoApplied bool) {
	label := "off"
	if geoApplied {
		label = "on"
	}
	discoverQueriesTotal.WithLabelValues(label).Inc()
}
