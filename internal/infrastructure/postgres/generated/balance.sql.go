
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countBalances = `-- name: CountBalances :one
SELECT COUNT(*) FROM balances
`

func (q *Queries) CountBalances(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countBalances)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const ensureBalance = `-- name: EnsureBalance :exec
INSERT INTO balances (account_id, amount, created_at, updated_at)
VALUES ($1, 0, now(), now())
ON CONFLICT (account_id) DO NOTHING
`

func (q *Queries) EnsureBalance(ctx context.Context, accountID string) error {
	_, err := q.db.Exec(ctx, ensureBalance, accountID)
	return err
}

const getBalance = `-- name: GetBalance :one
SELECT account_id, amount, created_at, updated_at FROM balances WHERE account_id = $1
`

func (q *Queries) GetBalance(ctx context.Context, accountID string) (Balance, error) {
	row := q.db.QueryRow(ctx, getBalance, accountID)
	var i Balance
	err := row.Scan(
		&i.AccountID,
		&i.Amount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBalancesForUpdate = `-- name: GetBalancesForUpdate :many
SELECT account_id, amount, created_at, updated_at FROM balances WHERE account_id = ANY($1::text[]) ORDER BY account_id FOR UPDATE
`

func (q *Queries) GetBalancesForUpdate(ctx context.Context, dollar_1 []string) ([]Balance, error) {
	rows, err := q.db.Query(ctx, getBalancesForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Balance{}
	for rows.Next() {
		var i Balance
		if err := rows.Scan(
			&i.AccountID,
			&i.Amount,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumBalances = `-- name: SumBalances :one
SELECT COALESCE(SUM(amount), 0)::NUMERIC AS total FROM balances
`

func (q *Queries) SumBalances(ctx context.Context) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumBalances)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const updateBalance = `-- name: UpdateBalance :exec
UPDATE balances
SET amount = $2, updated_at = now()
WHERE account_id = $1
`

type UpdateBalanceParams struct {
	AccountID string         `json:"account_id"`
	Amount    pgtype.Numeric `json:"amount"`
}

func (q *Queries) UpdateBalance(ctx context.Context, arg UpdateBalanceParams) error {
	_, err := q.db.Exec(ctx, updateBalance, arg.AccountID, arg.Amount)
	return err
}

const upsertBalanceIncrement = `-- name: UpsertBalanceIncrement :one
INSERT INTO balances (account_id, amount, created_at, updated_at)
VALUES ($1, $2, now(), now())
ON CONFLICT (account_id) DO UPDATE
SET amount = balances.amount + EXCLUDED.amount, updated_at = now()
RETURNING account_id, amount, created_at, updated_at
`

type UpsertBalanceIncrementParams struct {
	AccountID string         `json:"account_id"`
	Amount    pgtype.Numeric `json:"amount"`
}

func (q *Queries) UpsertBalanceIncrement(ctx context.Context, arg UpsertBalanceIncrementParams) (Balance, error) {
	row := q.db.QueryRow(ctx, upsertBalanceIncrement, arg.AccountID, arg.Amount)
	var i Balance
	err := row.Scan(
		&i.AccountID,
		&i.Amount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
