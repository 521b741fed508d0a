package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recstudio",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and route.",
		},
		[]string{"method", "route", "status"},
	)

	sessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recstudio",
			Name:      "sessions_created_total",
			Help:      "Sessions successfully scheduled.",
		},
	)

	conflictsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recstudio",
			Name:      "schedule_conflicts_total",
			Help:      "Create/update attempts rejected by the conflict check.",
		},
		[]string{"resource"},
	)

	defaultsCacheFailovers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recstudio",
			Name:      "defaults_cache_failovers_total",
			Help:      "Switches of the defaults cache between redis and memory.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, sessionsCreated, conflictsRejected, defaultsCacheFailovers)
	})
}

// IncHTTP counts one handled request.
func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

// IncSessionCreated counts one scheduled session.
func IncSessionCreated() {
	sessionsCreated.Inc()
}

// IncConflictRejected counts one conflict rejection for "room" or "engineer".
func IncConflictRejected(resource string) {
	conflictsRejected.WithLabelValues(resource).Inc()
}

// IncCacheFailover counts one defaults-cache backend switch.
func IncCacheFailover() {
	defaultsCacheFailovers.Inc()
}
