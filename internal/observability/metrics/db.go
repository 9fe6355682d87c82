package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pool connection states reported by StorePoolConnections.
const (
	PoolStateAcquired = "acquired"
	PoolStateIdle     = "idle"
	PoolStateMax      = "max"
	PoolStateTotal    = "total"
)

var (
	StorePoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_pool_connections",
			Help: "Postgres pool connections by state",
		},
		[]string{"state"},
	)

	// Operation metrics cover both the Postgres and the MongoDB user store;
	// collection is the table or collection touched.
	StoreOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of user store operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "User store operations that failed, by Go error type",
		},
		[]string{"operation", "collection", "error_type"},
	)
)
