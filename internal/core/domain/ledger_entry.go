package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry; income reports filter on it.
type EntryType string

const (
	EntryFundRequest EntryType = "FUND_REQUEST"
	EntryWithdrawal  EntryType = "WITHDRAWAL"
	EntryAdminCredit EntryType = "ADMIN_CREDIT"
	EntryAdminDebit  EntryType = "ADMIN_DEBIT"
)

// AllEntryTypes lists every entry type in display order.
var AllEntryTypes = []EntryType{EntryFundRequest, EntryWithdrawal, EntryAdminCredit, EntryAdminDebit}

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	for _, known := range AllEntryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LedgerEntry is the immutable audit record of one balance change.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	UserID        string          `json:"userID"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // signed
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	ReferenceID   *string         `json:"referenceID,omitempty"` // originating MonetaryRequest, if any
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}
