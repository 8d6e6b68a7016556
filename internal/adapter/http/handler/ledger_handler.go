package handler

import (
	"context"
	"net/http"

	"github.com/walletd/walletd/internal/adapter/http/dto"
	"github.com/walletd/walletd/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger-wide HTTP requests.
type LedgerHandler struct {
	ledger LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// CheckConsistency runs the conservation check across all accounts.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
