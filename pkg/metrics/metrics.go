package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jpo", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jpo", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jpo", Name: "http_requests_total", Help: "HTTP requests by route, method and status code."},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "jpo", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	CursorAdvances = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jpo", Name: "cursor_advances_total", Help: "Shared cursor advances by allocation strategy."},
		[]string{"strategy"},
	)
	PagesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jpo", Name: "pages_total", Help: "Item pages requested, by outcome (served|empty|error)."},
		[]string{"outcome"},
	)
	EditsInserted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "jpo", Name: "edits_inserted_total", Help: "Edit records written."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(CursorAdvances)
	reg.MustRegister(PagesServed)
	reg.MustRegister(EditsInserted)
}
