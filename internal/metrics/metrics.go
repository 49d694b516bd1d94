// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinkOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkly_link_operations_total",
		Help: "Link collection operations by kind and outcome.",
	}, []string{"op", "result"})

	WorkspacesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linkly_workspaces_active",
		Help: "Page sessions currently held in memory.",
	})

	WorkspacesEvicted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkly_workspaces_evicted_total",
		Help: "Page sessions dropped, by reason (idle, capacity).",
	}, []string{"reason"})

	PromptsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linkly_prompts_pending",
		Help: "Delete confirmations waiting for an answer.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkly_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	}, []string{"route", "status"})
)
