package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the workflow services.
type Metrics struct {
	transitions          *prometheus.CounterVec
	auditWriteFailures   prometheus.Counter
	notifications        *prometheus.CounterVec
	notificationsDropped prometheus.Counter
}

// NewMetrics registers the workflow collectors with reg. A nil registerer gets a
// private registry so tests can build services without touching the global one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_transitions_total",
				Help: "workflow transitions by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		auditWriteFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docflow_audit_write_failures_total",
				Help: "audit entries lost after every retry failed",
			},
		),
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_notifications_total",
				Help: "notification deliveries by outcome",
			},
			[]string{"outcome"},
		),
		notificationsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docflow_notifications_dropped_total",
				Help: "notifications discarded because the queue was full or closed",
			},
		),
	}
}

func (m *Metrics) observeTransition(event, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) observeAuditLoss() {
	if m == nil {
		return
	}
	m.auditWriteFailures.Inc()
}

func (m *Metrics) observeNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeDrop() {
	if m == nil {
		return
	}
	m.notificationsDropped.Inc()
}
