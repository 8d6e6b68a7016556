package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/walletd/walletd/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"self transfer", domain.ErrSelfTransfer, http.StatusBadRequest},
		{"invalid recipient", domain.ErrInvalidRecipient, http.StatusBadRequest},
		{"invalid account id", domain.ErrInvalidAccountID, http.StatusBadRequest},
		{"amount too large", domain.ErrAmountTooLarge, http.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"timeout", domain.ErrTimeout, http.StatusGatewayTimeout},
		{"record write", domain.ErrRecordWrite, http.StatusInternalServerError},
		{"wrapped error", fmt.Errorf("transfer: %w", domain.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, expected %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"present", "limit=25", 25},
		{"missing", "", 50},
		{"malformed", "limit=abc", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transactions?"+tt.query, nil)
			if got := parseIntQuery(req, "limit", 50); got != tt.want {
				t.Fatalf("parseIntQuery = %d, expected %d", got, tt.want)
			}
		})
	}
}
