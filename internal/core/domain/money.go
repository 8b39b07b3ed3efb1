package domain

import (
	"fmt"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for every amount (NUMERIC(20,2)).
const MoneyScale = 2

// HasMoneyScale reports whether amount is representable in MoneyScale decimal places.
// Trailing zeros are fine: "1.500" passes, "0.004" does not.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}

// ValidateAmount checks a positive money amount, such as a request or approved amount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}
	if !HasMoneyScale(amount) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), MoneyScale)
	}
	return nil
}
