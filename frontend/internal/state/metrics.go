package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_operation_transitions_total",
			Help: "Lifecycle transitions of store operations.",
		},
		[]string{"operation", "phase"},
	)

	operationsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forum_operations_in_flight",
			Help: "Store operations waiting for the backend.",
		},
		[]string{"operation"},
	)

	staleVotesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_stale_votes_dropped_total",
			Help: "Vote responses dropped because a newer vote on the same target was issued.",
		},
	)
)
