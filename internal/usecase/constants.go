package usecase

import "time"

const (
	// ReceivedAppendTimeout bounds the detached recipient-side history append
	// after a transfer has committed
	ReceivedAppendTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
