package domain

import (
	"github.com/shopspring/decimal"
)

// TransferRequest is the ephemeral input of a transfer. It is validated and
// discarded; nothing of it is persisted directly.
type TransferRequest struct {
	Sender    string
	Recipient string
	Amount    decimal.Decimal
}

// Validate checks the request. The first failing check wins: amount, then
// self-transfer, then recipient shape.
func (r *TransferRequest) Validate() error {
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}

	if r.Recipient == r.Sender {
		return ErrSelfTransfer
	}

	if err := ValidateRecipientID(r.Recipient); err != nil {
		return err
	}

	return nil
}
