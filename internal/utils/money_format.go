package utils

import (
	"github.com/SscSPs/mlm_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with the back office's fixed precision.
// Example: 12.3456 returns "12.35", 12 returns "12.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(accounting.MoneyPrecision)
}
