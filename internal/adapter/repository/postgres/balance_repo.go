package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/postgres/generated"
	"github.com/walletd/walletd/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository on PostgreSQL.
//
// All mutations commit an outbox event in the same transaction as the
// balance change, so subscribers observe every committed change.
type BalanceRepository struct {
	pool       *pgxpool.Pool
	queries    *generated.Queries
	txManager  *TxManager
	outboxRepo usecase.OutboxRepository
	retrier    *Retrier
	idGen      usecase.IDGenerator
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool, outboxRepo usecase.OutboxRepository, idGen usecase.IDGenerator) *BalanceRepository {
	return &BalanceRepository{
		pool:       pool,
		queries:    generated.New(pool),
		txManager:  NewTxManager(pool),
		outboxRepo: outboxRepo,
		retrier:    NewRetrier(),
		idGen:      idGen,
	}
}

// GetBalance returns the current balance, zero for accounts without a row.
func (r *BalanceRepository) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	row, err := r.queries.GetBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}

		return decimal.Zero, mapStoreError(ctx, err)
	}

	return numericToDecimal(row.Amount), nil
}

// EnsureInitialized idempotently creates a zero-balance row.
func (r *BalanceRepository) EnsureInitialized(ctx context.Context, accountID string) (*domain.Balance, error) {
	if err := r.queries.EnsureBalance(ctx, accountID); err != nil {
		return nil, mapStoreError(ctx, err)
	}

	row, err := r.queries.GetBalance(ctx, accountID)
	if err != nil {
		return nil, mapStoreError(ctx, err)
	}

	return rowToBalance(row), nil
}

// Deposit atomically increments the balance, creating the row at the
// deposited amount if absent. The balance change event commits with it.
func (r *BalanceRepository) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, mapStoreError(ctx, err)
	}
	defer tx.Rollback(ctx)

	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.UpsertBalanceIncrement(ctx, generated.UpsertBalanceIncrementParams{
		AccountID: accountID,
		Amount:    decimalToNumeric(amount),
	})
	if err != nil {
		return decimal.Zero, mapStoreError(ctx, err)
	}

	newBalance := numericToDecimal(row.Amount)

	if err := r.outboxRepo.Create(ctx, tx, r.balanceChangedEvent(accountID, newBalance)); err != nil {
		return decimal.Zero, mapStoreError(ctx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, mapStoreError(ctx, err)
	}

	return newBalance, nil
}

// Transfer moves amount between two accounts in one serializable
// transaction, locking both rows in sorted id order. Serialization failures
// and deadlocks are retried; exhaustion surfaces as ErrStoreUnavailable.
func (r *BalanceRepository) Transfer(ctx context.Context, sender, recipient string, amount decimal.Decimal, sentRecord *domain.TransactionRecord) (usecase.TransferBalances, error) {
	var balances usecase.TransferBalances

	err := r.retrier.Retry(ctx, func() error {
		b, err := r.transferOnce(ctx, sender, recipient, amount, sentRecord)
		if err != nil {
			return err
		}

		balances = b

		return nil
	})
	if err != nil {
		return usecase.TransferBalances{}, mapStoreError(ctx, err)
	}

	return balances, nil
}

func (r *BalanceRepository) transferOnce(ctx context.Context, sender, recipient string, amount decimal.Decimal, sentRecord *domain.TransactionRecord) (usecase.TransferBalances, error) {
	tx, err := r.txManager.BeginSerializable(ctx)
	if err != nil {
		return usecase.TransferBalances{}, err
	}
	defer tx.Rollback(ctx)

	queries := generated.New(tx.(*Tx).PgxTx())

	// Both rows must exist before locking: the sender's row at zero still
	// fails the sufficiency check, the recipient's is created on first use.
	ids := []string{sender, recipient}
	sort.Strings(ids)

	for _, id := range ids {
		if err := queries.EnsureBalance(ctx, id); err != nil {
			return usecase.TransferBalances{}, err
		}
	}

	// Lock in sorted order to avoid lock-order deadlocks between
	// concurrent opposite-direction transfers.
	rows, err := queries.GetBalancesForUpdate(ctx, ids)
	if err != nil {
		return usecase.TransferBalances{}, err
	}

	if len(rows) != len(ids) {
		return usecase.TransferBalances{}, domain.ErrAccountNotFound
	}

	byAccount := make(map[string]generated.Balance, len(rows))
	for _, row := range rows {
		byAccount[row.AccountID] = row
	}

	senderBalance := domain.Balance{
		AccountID: sender,
		Amount:    numericToDecimal(byAccount[sender].Amount),
	}
	if err := senderBalance.ValidateDebit(amount); err != nil {
		return usecase.TransferBalances{}, err
	}

	newSender := senderBalance.Amount.Sub(amount)
	newRecipient := numericToDecimal(byAccount[recipient].Amount).Add(amount)

	if err := queries.UpdateBalance(ctx, generated.UpdateBalanceParams{
		AccountID: sender,
		Amount:    decimalToNumeric(newSender),
	}); err != nil {
		return usecase.TransferBalances{}, err
	}

	if err := queries.UpdateBalance(ctx, generated.UpdateBalanceParams{
		AccountID: recipient,
		Amount:    decimalToNumeric(newRecipient),
	}); err != nil {
		return usecase.TransferBalances{}, err
	}

	if err := r.outboxRepo.Create(ctx, tx, r.balanceChangedEvent(sender, newSender)); err != nil {
		return usecase.TransferBalances{}, err
	}

	if err := r.outboxRepo.Create(ctx, tx, r.balanceChangedEvent(recipient, newRecipient)); err != nil {
		return usecase.TransferBalances{}, err
	}

	if sentRecord != nil {
		row, err := queries.CreateRecord(ctx, generated.CreateRecordParams{
			ID:           sentRecord.ID,
			AccountID:    sentRecord.AccountID,
			Counterparty: sentRecord.Counterparty,
			Description:  sentRecord.Description,
			Kind:         string(sentRecord.Kind),
			Amount:       decimalToNumeric(sentRecord.Amount),
		})
		if err != nil {
			return usecase.TransferBalances{}, err
		}

		sentRecord.Timestamp = row.CreatedAt.Time

		if err := r.outboxRepo.Create(ctx, tx, recordAppendedEvent(r.idGen.Generate(), sentRecord)); err != nil {
			return usecase.TransferBalances{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return usecase.TransferBalances{}, err
	}

	return usecase.TransferBalances{Sender: newSender, Recipient: newRecipient}, nil
}

func (r *BalanceRepository) balanceChangedEvent(accountID string, amount decimal.Decimal) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            r.idGen.Generate(),
		AggregateID:   accountID,
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeBalanceChanged,
		Payload: map[string]any{
			"account_id": accountID,
			"amount":     amount.String(),
		},
		CreatedAt: time.Now().UTC(),
	}
}

// mapStoreError translates driver failures into the domain's store error
// vocabulary. Domain errors pass through untouched.
func mapStoreError(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAccountNotFound):
		return err
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", domain.ErrTimeout, err)
	case isRetryableError(err):
		// Retries are exhausted by the time this is seen.
		return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
	default:
		return err
	}
}

func rowToBalance(row generated.Balance) *domain.Balance {
	return &domain.Balance{
		AccountID: row.AccountID,
		Amount:    numericToDecimal(row.Amount),
		CreatedAt: row.CreatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
