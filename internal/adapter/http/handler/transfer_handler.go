package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/walletd/walletd/internal/adapter/http/dto"
	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.TransactionRecord, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.TransactionRecord, error)
}

// TransferHandler handles deposits and transfers.
type TransferHandler struct {
	wallet TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(wallet TransferService) *TransferHandler {
	return &TransferHandler{wallet: wallet}
}

// Deposit credits an account.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if !authorizedForAccount(r, accountID) {
		writeError(w, http.StatusForbidden, "account not permitted", "token is scoped to a different account")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.wallet.Deposit(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// Create moves funds between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	// An authenticated caller may only send from their own account.
	if !authorizedForAccount(r, req.SenderID) {
		writeError(w, http.StatusForbidden, "account not permitted", "token is scoped to a different account")
		return
	}

	record, err := h.wallet.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}
