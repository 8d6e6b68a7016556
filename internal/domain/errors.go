package domain

import "errors"

var (
	// Balance errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")

	// Transfer errors
	ErrSelfTransfer     = errors.New("cannot transfer to the same account")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidRecipient = errors.New("invalid recipient account")

	// Record errors
	ErrInvalidRecordKind = errors.New("invalid transaction record kind")
	// ErrRecordWrite means the balance mutation committed but the history
	// append did not. Callers retry only the append, never the whole operation.
	ErrRecordWrite = errors.New("balance updated but transaction record write failed")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable, operation may be retried")
	ErrTimeout          = errors.New("operation timed out before submission")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
