
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Balance struct {
	AccountID string             `json:"account_id"`
	Amount    pgtype.Numeric     `json:"amount"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type TransactionRecord struct {
	ID           string             `json:"id"`
	AccountID    string             `json:"account_id"`
	Counterparty string             `json:"counterparty"`
	Description  string             `json:"description"`
	Kind         string             `json:"kind"`
	Amount       pgtype.Numeric     `json:"amount"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}
