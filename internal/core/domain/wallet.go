package domain

import (
	"fmt"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WalletAccount is the per-user mutable balance state. There is exactly one per user.
type WalletAccount struct {
	UserID           string          `json:"userID"`
	Balance          decimal.Decimal `json:"balance"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	AuditFields
}

// NewWalletAccount returns an empty wallet for userID.
func NewWalletAccount(userID string, audit AuditFields) WalletAccount {
	return WalletAccount{
		UserID:           userID,
		Balance:          decimal.Zero,
		TotalEarnings:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		AuditFields:      audit,
	}
}

// CanDebit reports whether amount (positive) can be removed without going negative.
func (w WalletAccount) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Apply adds a signed delta to the balance and returns the balances before and after.
// The wallet is left untouched when the result would be negative.
func (w *WalletAccount) Apply(delta decimal.Decimal) (before, after decimal.Decimal, err error) {
	before = w.Balance
	after = before.Add(delta)
	if after.IsNegative() {
		return before, before, fmt.Errorf("%w: balance %s cannot cover %s", apperrors.ErrInsufficientFunds, before.StringFixed(MoneyScale), delta.Neg().StringFixed(MoneyScale))
	}
	w.Balance = after
	return before, after, nil
}
