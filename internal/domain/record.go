package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind classifies a transaction record.
type RecordKind string

const (
	// RecordDeposit credits an account from outside the ledger.
	RecordDeposit RecordKind = "DEPOSIT"
	// RecordTransferSent debits the sender side of a transfer.
	RecordTransferSent RecordKind = "TRANSFER_SENT"
	// RecordTransferReceived credits the recipient side of a transfer.
	RecordTransferReceived RecordKind = "TRANSFER_RECEIVED"
)

// Valid reports whether the kind is one of the known record kinds.
func (k RecordKind) Valid() bool {
	switch k {
	case RecordDeposit, RecordTransferSent, RecordTransferReceived:
		return true
	}
	return false
}

// TransactionRecord is one immutable line of an account's history.
// Records are append-only: never updated, never deleted. The store keeps
// them in arrival order; display order is a client-side sort, see
// SortRecordsNewestFirst.
type TransactionRecord struct {
	Timestamp    time.Time
	ID           string
	AccountID    string
	Counterparty string
	Description  string
	Kind         RecordKind
	Amount       decimal.Decimal
}

// Validate validates a record before append.
func (r *TransactionRecord) Validate() error {
	if err := ValidateAccountID(r.AccountID); err != nil {
		return err
	}

	if !r.Kind.Valid() {
		return ErrInvalidRecordKind
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// SortRecordsNewestFirst orders records by timestamp descending for display.
// A record whose server timestamp has not resolved yet (zero value) sorts as
// oldest; it moves into place on the next refresh once the timestamp lands.
func SortRecordsNewestFirst(records []*TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}
