// Package metrics provides Prometheus metrics for the pitchside service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pitchside"

var registry = prometheus.NewRegistry()

var (
	eventsCommitted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_committed_total",
		Help:      "Raw match event rows committed, counting every row of a multi-row unit.",
	})

	eventRejections = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_rejections_total",
		Help:      "Proposed events rejected by eligibility validation.",
	})

	eventsDeleted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_deleted_total",
		Help:      "Event rows removed, including cascade-deleted pair halves.",
	})

	standingsBuilds = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standings_builds_total",
		Help:      "League table computations.",
	})

	standingsBuildDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "standings_build_duration_ms",
		Help:      "League table computation duration in milliseconds.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100},
	})

	timelineBuilds = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timeline_builds_total",
		Help:      "Per-team timeline computations.",
	})

	trackedTeams = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "teams",
		Help:      "Teams currently in the store.",
	})

	trackedMatches = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "matches",
		Help:      "Matches currently in the store.",
	})

	trackedEvents = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "match_events",
		Help:      "Raw event rows currently in the store.",
	})

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})
)

// GetRegistry exposes the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return registry
}

// RecordEventsCommitted adds n committed rows.
func RecordEventsCommitted(n int) {
	eventsCommitted.Add(float64(n))
}

// RecordEventRejection counts one rejected proposal.
func RecordEventRejection() {
	eventRejections.Inc()
}

// RecordEventsDeleted adds n removed rows.
func RecordEventsDeleted(n int) {
	eventsDeleted.Add(float64(n))
}

// RecordStandingsBuild counts one table computation and its duration.
func RecordStandingsBuild(durationMs float64) {
	standingsBuilds.Inc()
	standingsBuildDuration.Observe(durationMs)
}

// RecordTimelineBuild counts one per-team timeline computation.
func RecordTimelineBuild() {
	timelineBuilds.Inc()
}

// UpdateStoreCounts refreshes the entity gauges.
func UpdateStoreCounts(teams, matches, events int) {
	trackedTeams.Set(float64(teams))
	trackedMatches.Set(float64(matches))
	trackedEvents.Set(float64(events))
}

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's duration.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}
