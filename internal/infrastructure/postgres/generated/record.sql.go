
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countRecordsByAccount = `-- name: CountRecordsByAccount :one
SELECT COUNT(*) FROM transaction_records WHERE account_id = $1
`

func (q *Queries) CountRecordsByAccount(ctx context.Context, accountID string) (int64, error) {
	row := q.db.QueryRow(ctx, countRecordsByAccount, accountID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createRecord = `-- name: CreateRecord :one
INSERT INTO transaction_records (id, account_id, counterparty, description, kind, amount, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id, account_id, counterparty, description, kind, amount, created_at
`

type CreateRecordParams struct {
	ID           string         `json:"id"`
	AccountID    string         `json:"account_id"`
	Counterparty string         `json:"counterparty"`
	Description  string         `json:"description"`
	Kind         string         `json:"kind"`
	Amount       pgtype.Numeric `json:"amount"`
}

func (q *Queries) CreateRecord(ctx context.Context, arg CreateRecordParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, createRecord,
		arg.ID,
		arg.AccountID,
		arg.Counterparty,
		arg.Description,
		arg.Kind,
		arg.Amount,
	)
	var i TransactionRecord
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Counterparty,
		&i.Description,
		&i.Kind,
		&i.Amount,
		&i.CreatedAt,
	)
	return i, err
}

const getRecordsByAccount = `-- name: GetRecordsByAccount :many
SELECT id, account_id, counterparty, description, kind, amount, created_at FROM transaction_records
WHERE account_id = $1
LIMIT $2 OFFSET $3
`

type GetRecordsByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) GetRecordsByAccount(ctx context.Context, arg GetRecordsByAccountParams) ([]TransactionRecord, error) {
	rows, err := q.db.Query(ctx, getRecordsByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []TransactionRecord{}
	for rows.Next() {
		var i TransactionRecord
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.Counterparty,
			&i.Description,
			&i.Kind,
			&i.Amount,
			&i.CreatedAt,
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

const sumRecordsByKind = `-- name: SumRecordsByKind :one
SELECT COALESCE(SUM(amount), 0)::NUMERIC AS total FROM transaction_records WHERE kind = $1
`

func (q *Queries) SumRecordsByKind(ctx context.Context, kind string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumRecordsByKind, kind)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
