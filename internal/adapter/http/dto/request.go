package dto

import (
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/usecase"
)

// CreateAccountRequest represents a request to initialize an account.
type CreateAccountRequest struct {
	AccountID string `json:"account_id"`
}

// DepositRequest represents a request to credit an account.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(accountID string) usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:   accountID,
		Description: r.Description,
		Amount:      r.Amount,
	}
}

// CreateTransferRequest represents a request to move funds between accounts.
type CreateTransferRequest struct {
	SenderID    string          `json:"sender_id"`
	RecipientID string          `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		Sender:      r.SenderID,
		Recipient:   r.RecipientID,
		Description: r.Description,
		Amount:      r.Amount,
	}
}
