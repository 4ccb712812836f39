package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics counts order lifecycle activity. A nil *OrderMetrics is valid
// and records nothing.
type OrderMetrics struct {
	created       prometheus.Counter
	rejected      prometheus.Counter
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders accepted and persisted.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Order creations rejected by validation.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_status_transitions_total",
			Help: "Order status transitions by target status.",
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_notifications_total",
			Help: "Order notification attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(m.created, m.rejected, m.transitions, m.notifications)
	return m
}

func (m *OrderMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *OrderMetrics) OrderRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *OrderMetrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *OrderMetrics) Notification(kind string, delivered bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !delivered {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}
