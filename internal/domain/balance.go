package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the current funds of a single wallet account. Rows are created
// lazily at zero by the first operation that touches the account.
type Balance struct {
	AccountID string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// ValidateDebit checks if the balance can cover a debit of amount.
// Balances are never allowed to go negative.
func (b *Balance) ValidateDebit(amount decimal.Decimal) error {
	if b.Amount.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (b *Balance) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (b *Balance) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Add(amount)
}
