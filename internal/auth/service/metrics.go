package service

import (
	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
)

func recordRegistration(result string) {
	metrics.UsersRegisteredTotal.WithLabelValues(result).Inc()
}

func recordLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}
