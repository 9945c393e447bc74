package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yamdb_http_requests_total",
		Help: "Number of HTTP requests handled.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yamdb_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// CacheLookups counts cache reads by outcome (hit or miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yamdb_cache_lookups_total",
		Help: "Cache lookups by cache and result.",
	}, []string{"cache", "result"})

	// ConfirmationCodesSent counts mailed confirmation codes.
	ConfirmationCodesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yamdb_confirmation_codes_sent_total",
		Help: "Confirmation codes mailed at signup.",
	})
)
