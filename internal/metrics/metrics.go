// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civic_http_requests_total",
		Help: "HTTP requests served, by route pattern and status code.",
	}, []string{"route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "civic_http_request_duration_seconds",
		Help:    "Time from request receipt to response, by route pattern.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})

	SlugLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civic_slug_lookups_total",
		Help: "Organization slug resolutions, by result (found, not_found, error).",
	}, []string{"result"})

	CascadeDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civic_cascade_deletes_total",
		Help: "Organization cascade deletes, by result (deleted, not_found, error).",
	}, []string{"result"})
)
