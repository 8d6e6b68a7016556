package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func newFastRetrier(maxRetries int) *Retrier {
	r := NewRetrier()
	r.maxRetries = maxRetries
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 50 * time.Millisecond
	return r
}

func TestRetrierSucceedsAfterConflict(t *testing.T) {
	r := newFastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrSerializationFailure}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierDoesNotRetryNonConflictErrors(t *testing.T) {
	r := newFastRetrier(3)

	attempts := 0
	boom := errors.New("constraint violation")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error back, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterBudget(t *testing.T) {
	r := newFastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	if err == nil {
		t.Fatalf("expected error once the retry budget is spent")
	}
	// Initial attempt plus maxRetries retries.
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"other pg error", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Fatalf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
