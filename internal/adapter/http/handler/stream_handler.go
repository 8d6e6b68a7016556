package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/walletd/walletd/internal/adapter/http/dto"
	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/fanout"
	"github.com/walletd/walletd/internal/usecase"
)

const streamHeartbeatInterval = 15 * time.Second

// StreamHandler serves live subscriptions over server-sent events.
type StreamHandler struct {
	wallet WalletService
	hub    *fanout.Hub
	logger zerolog.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(wallet WalletService, hub *fanout.Hub, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		wallet: wallet,
		hub:    hub,
		logger: logger,
	}
}

// StreamBalance streams an account's balance: the current value first, then
// every committed change. Bursts coalesce to the latest value, so a slow
// client converges on the current balance instead of lagging behind.
func (h *StreamHandler) StreamBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if err := domain.ValidateAccountID(accountID); err != nil {
		writeError(w, mapDomainError(err), "invalid account ID", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	// Register before reading the snapshot so no committed change falls
	// between the two.
	sub := h.hub.SubscribeBalance(accountID)
	defer sub.Cancel()

	snapshot, err := h.wallet.GetBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	setStreamHeaders(w)

	writeSSE(w, "balance", dto.BalanceResponse{AccountID: accountID, Balance: snapshot})
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case amount, ok := <-sub.Updates():
			if !ok {
				return
			}
			writeSSE(w, "balance", dto.BalanceResponse{AccountID: accountID, Balance: amount})
			flusher.Flush()
		}
	}
}

// StreamRecords streams an account's transaction history: a snapshot of
// recent records first, then every appended record. Nothing is coalesced;
// a subscriber that cannot keep up is disconnected with an error event
// rather than silently skipped past.
func (h *StreamHandler) StreamRecords(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if err := domain.ValidateAccountID(accountID); err != nil {
		writeError(w, mapDomainError(err), "invalid account ID", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	sub := h.hub.SubscribeRecords(accountID)
	defer sub.Cancel()

	records, err := h.wallet.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	domain.SortRecordsNewestFirst(records)

	setStreamHeaders(w)

	for _, record := range records {
		writeSSE(w, "record", dto.RecordFromDomain(record))
	}
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case record, ok := <-sub.Records():
			if !ok {
				if errors.Is(sub.Err(), fanout.ErrSlowConsumer) {
					writeSSE(w, "error", dto.ErrorResponse{
						Error:   "subscriber fell behind",
						Message: "reconnect and resync from the snapshot",
					})
					flusher.Flush()
				}
				return
			}
			writeSSE(w, "record", dto.RecordFromDomain(record))
			flusher.Flush()
		}
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
}

func writeSSE(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
