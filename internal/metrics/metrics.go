// Package metrics exposes Prometheus collectors for workflow activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsTotal counts committed status transitions by edge.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printflow_transitions_total",
		Help: "Committed task status transitions.",
	}, []string{"from", "to"})

	// TransitionFailures counts rejected or failed transition requests.
	TransitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printflow_transition_failures_total",
		Help: "Transition requests that were rejected or failed.",
	}, []string{"kind"})

	// NotificationsEnqueued counts notifications handed to the dispatcher.
	NotificationsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "printflow_notifications_enqueued_total",
		Help: "Notifications enqueued for delivery.",
	}, []string{"template"})

	// NotificationsDropped counts notifications dropped due to a full queue.
	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "printflow_notifications_dropped_total",
		Help: "Notifications dropped because the dispatch queue was full.",
	})
)
