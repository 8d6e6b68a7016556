package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/postgres/generated"
	"github.com/walletd/walletd/internal/usecase"
)

// RecordRepository implements usecase.TransactionLog on PostgreSQL. The
// table is append-only; rows are never updated or deleted.
type RecordRepository struct {
	pool       *pgxpool.Pool
	queries    *generated.Queries
	txManager  *TxManager
	outboxRepo usecase.OutboxRepository
	idGen      usecase.IDGenerator
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool, outboxRepo usecase.OutboxRepository, idGen usecase.IDGenerator) *RecordRepository {
	return &RecordRepository{
		pool:       pool,
		queries:    generated.New(pool),
		txManager:  NewTxManager(pool),
		outboxRepo: outboxRepo,
		idGen:      idGen,
	}
}

// Append writes a record with a store-assigned timestamp and commits its
// outbox event alongside. The assigned timestamp is written back into the
// record.
func (r *RecordRepository) Append(ctx context.Context, record *domain.TransactionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	tx, err := r.txManager.Begin(ctx)
	if err != nil {
		return mapStoreError(ctx, err)
	}
	defer tx.Rollback(ctx)

	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.CreateRecord(ctx, generated.CreateRecordParams{
		ID:           record.ID,
		AccountID:    record.AccountID,
		Counterparty: record.Counterparty,
		Description:  record.Description,
		Kind:         string(record.Kind),
		Amount:       decimalToNumeric(record.Amount),
	})
	if err != nil {
		return mapStoreError(ctx, err)
	}

	record.Timestamp = row.CreatedAt.Time

	if err := r.outboxRepo.Create(ctx, tx, recordAppendedEvent(r.idGen.Generate(), record)); err != nil {
		return mapStoreError(ctx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(ctx, err)
	}

	return nil
}

// List returns an account's records in arrival order. No ORDER BY: the
// store's insertion order is the contract, display ordering is the
// caller's concern.
func (r *RecordRepository) List(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	rows, err := r.queries.GetRecordsByAccount(ctx, generated.GetRecordsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, mapStoreError(ctx, err)
	}

	records := make([]*domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}

	return records, nil
}

func rowToRecord(row generated.TransactionRecord) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:           row.ID,
		AccountID:    row.AccountID,
		Counterparty: row.Counterparty,
		Description:  row.Description,
		Kind:         domain.RecordKind(row.Kind),
		Amount:       numericToDecimal(row.Amount),
		Timestamp:    row.CreatedAt.Time,
	}
}

func recordAppendedEvent(id string, record *domain.TransactionRecord) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            id,
		AggregateID:   record.AccountID,
		AggregateType: domain.AggregateTypeRecord,
		EventType:     domain.EventTypeRecordAppended,
		Payload: map[string]any{
			"record_id":    record.ID,
			"account_id":   record.AccountID,
			"kind":         string(record.Kind),
			"amount":       record.Amount.String(),
			"counterparty": record.Counterparty,
			"description":  record.Description,
			"timestamp":    record.Timestamp.UTC().Format(time.RFC3339Nano),
		},
		CreatedAt: record.Timestamp,
	}
}
