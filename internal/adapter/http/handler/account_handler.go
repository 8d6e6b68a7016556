package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/adapter/http/dto"
	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/usecase"
)

// WalletService defines the behavior needed by AccountHandler.
type WalletService interface {
	InitializeAccount(ctx context.Context, accountID string) (*domain.Balance, error)
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.TransactionRecord, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	wallet WalletService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(wallet WalletService) *AccountHandler {
	return &AccountHandler{wallet: wallet}
}

// Create idempotently initializes an account at zero balance.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !authorizedForAccount(r, req.AccountID) {
		writeError(w, http.StatusForbidden, "account not permitted", "token is scoped to a different account")
		return
	}

	balance, err := h.wallet.InitializeAccount(r.Context(), req.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initialize account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceResponse{
		AccountID: balance.AccountID,
		Balance:   balance.Amount,
	})
}

// GetBalance returns the current balance, zero for untouched accounts.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	balance, err := h.wallet.GetBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// ListTransactions returns an account's history, newest first by business
// timestamp.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.wallet.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	// Records come back in arrival order; display order is by timestamp.
	domain.SortRecordsNewestFirst(records)

	writeJSON(w, http.StatusOK, dto.TransactionListResponse{
		AccountID: accountID,
		Records:   dto.RecordsFromDomain(records),
		Limit:     limit,
		Offset:    offset,
	})
}
