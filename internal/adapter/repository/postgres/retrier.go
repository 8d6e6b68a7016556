package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that signal a transaction conflict worth retrying.
// Serialization failures are expected under SERIALIZABLE transfers;
// deadlocks should not occur with sorted lock order but are handled
// the same way if they do.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
)

const (
	defaultConflictRetries = 3
	defaultInitialBackoff  = 25 * time.Millisecond
	defaultMaxBackoff      = 500 * time.Millisecond
	defaultRetryWindow     = 5 * time.Second
)

// Retrier re-runs a transaction closure on conflicts with exponential
// backoff. Callers map budget exhaustion to a transient store error.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *slog.Logger
}

// NewRetrier creates a Retrier with the default conflict budget.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:      defaultConflictRetries,
		initialInterval: defaultInitialBackoff,
		maxInterval:     defaultMaxBackoff,
		maxElapsedTime:  defaultRetryWindow,
		logger:          slog.Default(),
	}
}

// Retry executes operation, re-running it while it fails with a conflict.
// Non-conflict errors and context cancellation end the loop immediately.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialInterval
	policy.MaxInterval = r.maxInterval
	policy.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn("transaction conflict, retrying",
			"error", err,
			"attempt", attempt,
		)

		return err
	}, backoff.WithContext(policy, ctx))
}

// isRetryableError reports whether err is a conflict that a fresh
// transaction attempt can resolve.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlock
	}
	return false
}
