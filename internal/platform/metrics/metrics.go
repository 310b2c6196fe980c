package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsStarted prometheus.Counter
	StepsCompleted       *prometheus.CounterVec
	StepFailures         *prometheus.CounterVec
	Decisions            *prometheus.CounterVec
	PoliciesIssued       prometheus.Counter
	PremiumCalcDuration  prometheus.Histogram
	RequestLatency       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "covergate_registrations_started_total",
			Help: "Total number of registration sessions started",
		}),
		StepsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "covergate_registration_steps_completed_total",
			Help: "Registration steps completed, by step",
		}, []string{"step"}),
		StepFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "covergate_registration_step_failures_total",
			Help: "Registration step failures, by step and error code",
		}, []string{"step", "code"}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "covergate_underwriting_decisions_total",
			Help: "Underwriting decisions, by outcome",
		}, []string{"decision"}),
		PoliciesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "covergate_policies_issued_total",
			Help: "Total number of policies issued",
		}),
		PremiumCalcDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "covergate_premium_calculation_seconds",
			Help:    "Time spent computing premiums",
			Buckets: prometheus.DefBuckets,
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "covergate_http_request_duration_seconds",
			Help:    "HTTP request latency, by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
