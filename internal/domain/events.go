package domain

import "time"

// Event types
const (
	EventTypeBalanceChanged = "balance.changed"
	EventTypeRecordAppended = "record.appended"
)

// Aggregate types
const (
	AggregateTypeBalance = "balance"
	AggregateTypeRecord  = "record"
)

// OutboxEvent represents a committed change waiting to be pushed to
// subscribers. Events are written in the same store transaction as the
// change they describe and published by the dispatcher afterwards, so
// delivery is at-least-once.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// BalanceChangedEvent payload
type BalanceChangedEvent struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// RecordAppendedEvent payload
type RecordAppendedEvent struct {
	RecordID     string `json:"record_id"`
	AccountID    string `json:"account_id"`
	Kind         string `json:"kind"`
	Amount       string `json:"amount"`
	Counterparty string `json:"counterparty,omitempty"`
	Description  string `json:"description,omitempty"`
	Timestamp    string `json:"timestamp"`
}
