package models

import "github.com/shopspring/decimal"

// Wallet represents a row of the wallets table.
type Wallet struct {
	UserID           string          `db:"user_id"`
	Balance          decimal.Decimal `db:"balance"`
	TotalEarnings    decimal.Decimal `db:"total_earnings"`
	TotalWithdrawals decimal.Decimal `db:"total_withdrawals"`
	AuditFields
}
