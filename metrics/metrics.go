package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BroadcastsTotal counts broadcast invocations by variant (daily, test).
	BroadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ayah_broadcasts_total",
		Help: "Total number of broadcast invocations.",
	}, []string{"variant"})

	// DeliveriesTotal counts successful push deliveries.
	DeliveriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ayah_push_deliveries_total",
		Help: "Total number of successful push deliveries.",
	})

	// PrunedTotal counts subscriptions removed after a gone response.
	PrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ayah_push_subscriptions_pruned_total",
		Help: "Total number of subscriptions pruned after the push service reported them gone.",
	})

	// FailuresTotal counts transient delivery failures.
	FailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ayah_push_delivery_failures_total",
		Help: "Total number of push deliveries that failed without pruning.",
	})
)
