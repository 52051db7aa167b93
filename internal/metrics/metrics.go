package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	CustomerResolutions *prometheus.CounterVec
	OrderFetches        *prometheus.CounterVec
	SMSSent             *prometheus.CounterVec
}

// New registers the gateway counters on reg. Pass prometheus.NewRegistry() in
// tests to avoid duplicate registration on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CustomerResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundrydesk_customer_resolutions_total",
			Help: "Customer resolutions by outcome (found, created, race_recovered, error).",
		}, []string{"outcome"}),
		OrderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundrydesk_order_fetches_total",
			Help: "Order page fetches by result (success, error, stale).",
		}, []string{"result"}),
		SMSSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundrydesk_sms_sent_total",
			Help: "SMS send attempts by status (sent, failed).",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.CustomerResolutions, m.OrderFetches, m.SMSSent)
	}
	return m
}

func (m *Metrics) Resolution(outcome string) {
	if m == nil {
		return
	}
	m.CustomerResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OrderFetch(result string) {
	if m == nil {
		return
	}
	m.OrderFetches.WithLabelValues(result).Inc()
}

func (m *Metrics) SMS(status string) {
	if m == nil {
		return
	}
	m.SMSSent.WithLabelValues(status).Inc()
}
