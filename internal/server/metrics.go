package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piiredact_requests_total",
		Help: "Anonymization requests by outcome.",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "piiredact_request_duration_seconds",
		Help: "End-to-end anonymization latency.",
		// The latency target is 300ms; buckets bracket it.
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2.5},
	})

	detectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piiredact_detections_total",
		Help: "Detections by category.",
	}, []string{"category"})
)
