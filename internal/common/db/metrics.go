package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
)

// StartPoolMetrics publishes pool gauges until ctx is cancelled.
func StartPoolMetrics(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := pool.Stat()
				metrics.StorePoolConnections.WithLabelValues(metrics.PoolStateAcquired).Set(float64(stats.AcquiredConns()))
				metrics.StorePoolConnections.WithLabelValues(metrics.PoolStateIdle).Set(float64(stats.IdleConns()))
				metrics.StorePoolConnections.WithLabelValues(metrics.PoolStateMax).Set(float64(stats.MaxConns()))
				metrics.StorePoolConnections.WithLabelValues(metrics.PoolStateTotal).Set(float64(stats.TotalConns()))
			}
		}
	}()
}
