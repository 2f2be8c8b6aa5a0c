package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skill_tracker_http_requests_total", Help: "HTTP requests by route and status"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "skill_tracker_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	AdvisorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skill_tracker_advisor_calls_total", Help: "AI advisory calls by operation and outcome"},
		[]string{"operation", "outcome"},
	)
	ActivityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "skill_tracker_activity_events_total", Help: "Activity events handled by the worker"},
		[]string{"outcome"},
	)
	BadgesAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "skill_tracker_badges_awarded_total", Help: "Badges awarded by the system"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, AdvisorCalls, ActivityEvents, BadgesAwarded)
}
