package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
)

var (
	AppRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path"},
	)

	AppRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	AppRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "app_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	UsersRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of account registration attempts by result",
		},
		[]string{"result"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	SessionsDestroyedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_destroyed_total",
			Help: "Total number of sessions destroyed on logout",
		},
	)

	SessionValidationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_validations_failed_total",
			Help: "Total number of rejected session cookies by reason",
		},
		[]string{"reason"},
	)

	EventRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_registrations_total",
			Help: "Total number of event registration attempts by result",
		},
		[]string{"result"},
	)
)
