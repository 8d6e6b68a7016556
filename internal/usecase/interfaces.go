package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
)

// TransferBalances carries both post-commit balances of a transfer so
// callers can publish or display them without a re-read.
type TransferBalances struct {
	Sender    decimal.Decimal
	Recipient decimal.Decimal
}

// BalanceRepository defines data access for account balances. Balances are
// mutated only through these primitives; no other component writes them.
type BalanceRepository interface {
	// GetBalance returns the current balance, or zero if the account has no
	// row. It never creates one.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	// EnsureInitialized idempotently creates a zero-balance row if absent.
	// It never overwrites an existing balance.
	EnsureInitialized(ctx context.Context, accountID string) (*domain.Balance, error)
	// Deposit atomically increments the balance, creating the row at the
	// deposited amount if absent, and returns the new balance.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Transfer moves amount from sender to recipient in a single
	// serializable transaction: read sender, check sufficiency, decrement,
	// increment (creating the recipient row if absent). The implementation
	// retries on write conflicts until commit or budget exhaustion.
	// When sentRecord is non-nil it is appended inside the same transaction.
	Transfer(ctx context.Context, sender, recipient string, amount decimal.Decimal, sentRecord *domain.TransactionRecord) (TransferBalances, error)
}

// TransactionLog defines data access for the append-only per-account
// transaction history.
type TransactionLog interface {
	// Append assigns a server-side timestamp (written back into the record)
	// and writes the record. Existing records are never touched.
	Append(ctx context.Context, record *domain.TransactionRecord) error
	// List returns records in arrival order at the store, unordered with
	// respect to business time. Callers sort before display.
	List(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// CheckConservation returns the sum of all balances and the sum of all
	// deposit record amounts. Transfers conserve value, so the two sums
	// agree whenever the history is complete.
	CheckConservation(ctx context.Context) (totalBalance, totalDeposited decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// BeginSerializable starts a transaction at serializable isolation, the
	// level the transfer path requires.
	BeginSerializable(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
