package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/usecase"
)

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// RecordResponse represents a transaction record in API responses.
type RecordResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty,omitempty"`
	Description  string          `json:"description,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// RecordFromDomain converts a domain record to a response.
func RecordFromDomain(r *domain.TransactionRecord) *RecordResponse {
	return &RecordResponse{
		ID:           r.ID,
		AccountID:    r.AccountID,
		Kind:         string(r.Kind),
		Amount:       r.Amount,
		Counterparty: r.Counterparty,
		Description:  r.Description,
		Timestamp:    r.Timestamp,
	}
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []*domain.TransactionRecord) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// TransactionListResponse wraps a page of transaction records.
type TransactionListResponse struct {
	AccountID string            `json:"account_id"`
	Records   []*RecordResponse `json:"records"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// ConsistencyResponse reports the ledger-wide conservation check.
type ConsistencyResponse struct {
	Consistent     bool            `json:"consistent"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	TotalDeposited decimal.Decimal `json:"total_deposited"`
	Drift          decimal.Decimal `json:"drift"`
}

// ConsistencyFromReport converts a use case report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:     r.Consistent,
		TotalBalance:   r.TotalBalance,
		TotalDeposited: r.TotalDeposited,
		Drift:          r.Drift,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
