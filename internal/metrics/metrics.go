// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "order_intake"

// Submission outcomes
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomeNotConfigured = "not_configured"
	OutcomeFailed        = "failed"
)

// Email audiences
const (
	AudienceMerchant = "merchant"
	AudienceCustomer = "customer"
)

// Metrics groups the collectors used by the handlers and service
type Metrics struct {
	Submissions     *prometheus.CounterVec
	EmailsSent      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Order submissions by outcome.",
		}, []string{"outcome"}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Email send attempts by audience and result.",
		}, []string{"audience", "result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	reg.MustRegister(m.Submissions, m.EmailsSent, m.RequestDuration)
	return m
}

// ObserveSubmission counts one order submission
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveEmail counts one email send attempt
func (m *Metrics) ObserveEmail(audience string, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.EmailsSent.WithLabelValues(audience, result).Inc()
}
