package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a row of the ledger_entries table. Rows are never updated.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	UserID        string          `db:"user_id"`
	EntryType     string          `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	ReferenceID   *string         `db:"reference_id"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
}
