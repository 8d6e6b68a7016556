package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountID = errors.New("invalid account ID")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountIDLength = 64
	MaxTransferAmount  = "1000000000000" // 1 trillion
)

// Account identifiers are opaque strings issued by the identity provider.
// They are only required to be printable and reasonably short.
var accountIDRegex = regexp.MustCompile(`^[A-Za-z0-9_:-]+$`)

// ValidateAccountID validates an account identifier.
func ValidateAccountID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidAccountID)
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: ID exceeds %d characters", ErrInvalidAccountID, MaxAccountIDLength)
	}

	if !accountIDRegex.MatchString(id) {
		return fmt.Errorf("%w: ID contains forbidden characters", ErrInvalidAccountID)
	}

	return nil
}

// ValidateRecipientID validates the recipient side of a transfer. A malformed
// recipient is its own error kind so callers can distinguish it from a bad
// sender identifier.
func ValidateRecipientID(id string) error {
	if err := ValidateAccountID(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, id)
	}

	return nil
}

// ValidateAmount validates a deposit/transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}
