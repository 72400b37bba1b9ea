package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for lead capture activity.
type Metrics struct {
	quizResults    *prometheus.CounterVec
	contactResults *prometheus.CounterVec
	webhookResults *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the instance registered with the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNew(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNew registers the collectors on reg and panics on duplicate registration.
// Tests should pass a fresh prometheus.NewRegistry().
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		quizResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "leadforge",
				Subsystem: "assessment",
				Name:      "results_total",
				Help:      "Completed assessments by urgency.",
			},
			[]string{"urgency"},
		),
		contactResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "leadforge",
				Subsystem: "contact",
				Name:      "submissions_total",
				Help:      "Contact form submissions by outcome.",
			},
			[]string{"outcome"},
		),
		webhookResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "leadforge",
				Subsystem: "webhook",
				Name:      "deliveries_total",
				Help:      "Webhook deliveries by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "leadforge",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
	}
	reg.MustRegister(m.quizResults, m.contactResults, m.webhookResults, m.httpRequests)
	return m
}

// ObserveQuiz counts one completed assessment
func (m *Metrics) ObserveQuiz(urgency string) {
	if m == nil {
		return
	}
	m.quizResults.WithLabelValues(urgency).Inc()
}

// ObserveContact counts one contact submission outcome
func (m *Metrics) ObserveContact(outcome string) {
	if m == nil {
		return
	}
	m.contactResults.WithLabelValues(outcome).Inc()
}

// ObserveWebhook counts one webhook delivery attempt chain
func (m *Metrics) ObserveWebhook(kind, outcome string) {
	if m == nil {
		return
	}
	m.webhookResults.WithLabelValues(kind, outcome).Inc()
}

// ObserveRequest counts one HTTP request
func (m *Metrics) ObserveRequest(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}
