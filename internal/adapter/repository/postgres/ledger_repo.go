package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CheckConservation returns the sum of all balances and the sum of all
// deposit record amounts. Deposits are the only value inflow, so the two
// totals agree whenever the record history is complete.
func (r *LedgerRepository) CheckConservation(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	totalBalance, err := r.queries.SumBalances(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, mapStoreError(ctx, err)
	}

	totalDeposited, err := r.queries.SumRecordsByKind(ctx, string(domain.RecordDeposit))
	if err != nil {
		return decimal.Zero, decimal.Zero, mapStoreError(ctx, err)
	}

	return numericToDecimal(totalBalance), numericToDecimal(totalDeposited), nil
}
