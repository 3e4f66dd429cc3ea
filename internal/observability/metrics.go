// Package observability provides application metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheErrors counts Redis errors by operation type.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_cache_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WarblesCreated counts messages successfully posted.
	WarblesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_created_total",
		Help: "Total number of warbles created",
	})

	// AuthFailures counts failed authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_auth_failures_total",
		Help: "Total number of failed authentication attempts",
	}, []string{"reason"})
)
