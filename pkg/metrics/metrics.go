package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Step outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Notification steps.
const (
	StepIdentity = "identity"
	StepCalendar = "calendar"
	StepEmail    = "email"
	StepSlack    = "slack"
)

var (
	SubmissionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hireme_submissions_recorded_total",
			Help: "Total number of interview requests recorded",
		},
	)

	NotificationSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireme_notification_steps_total",
			Help: "Notification side effects by step and outcome",
		},
		[]string{"step", "outcome"},
	)

	RemoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hireme_remote_call_duration_seconds",
			Help:    "Duration of calls to external services",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"step"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hireme_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)
)

func IncrementSubmissionsRecorded() {
	SubmissionsRecorded.Inc()
}

// RecordNotificationStep counts one step outcome and, unless skipped, its latency
func RecordNotificationStep(step, outcome string, duration time.Duration) {
	NotificationSteps.WithLabelValues(step, outcome).Inc()
	if outcome != OutcomeSkipped {
		RemoteCallDuration.WithLabelValues(step).Observe(duration.Seconds())
	}
}

func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
