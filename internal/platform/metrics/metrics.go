package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsCreated   prometheus.Counter
	RegistrationsCancelled prometheus.Counter
	RegistrationsRejected  *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "messhall_registrations_created_total",
			Help: "Total number of meal registrations created",
		}),
		RegistrationsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "messhall_registrations_cancelled_total",
			Help: "Total number of meal registrations cancelled",
		}),
		RegistrationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "messhall_registrations_rejected_total",
			Help: "Registration and cancellation attempts rejected, by rule",
		}, []string{"reason"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "messhall_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// RegistrationCreated increments the created counter. Nil-safe so services
// can run without metrics in tests.
func (m *Metrics) RegistrationCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

// RegistrationCancelled increments the cancelled counter.
func (m *Metrics) RegistrationCancelled() {
	if m == nil {
		return
	}
	m.RegistrationsCancelled.Inc()
}

// RejectRegistration counts a rejected attempt by the rule that rejected it.
func (m *Metrics) RejectRegistration(reason string) {
	if m == nil {
		return
	}
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(elapsed.Seconds())
}
