package db

import (
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
)

// HandleQueryError records the query duration and maps pgx.ErrNoRows to
// notFoundErr. A nil notFoundErr keeps ErrNoRows as a regular failure.
func HandleQueryError(err error, notFoundErr error, operation, collection string, startTime time.Time) error {
	MeasureQueryDuration(operation, collection, startTime)

	if err == nil {
		return nil
	}
	if notFoundErr != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	return recordFailure(err, operation, collection)
}

// HandleExecError is HandleQueryError for statements that return no rows.
// The MongoDB store uses it too.
func HandleExecError(err error, operation, collection string, startTime time.Time) error {
	MeasureQueryDuration(operation, collection, startTime)

	if err == nil {
		return nil
	}
	return recordFailure(err, operation, collection)
}

func MeasureQueryDuration(operation, collection string, startTime time.Time) {
	metrics.StoreOperationDurationSeconds.WithLabelValues(operation, collection).Observe(time.Since(startTime).Seconds())
}

func recordFailure(err error, operation, collection string) error {
	metrics.StoreOperationErrors.WithLabelValues(operation, collection, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}
