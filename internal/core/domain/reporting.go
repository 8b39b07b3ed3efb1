package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeReportFilter selects ledger entries for an income report.
type IncomeReportFilter struct {
	EntryTypes []EntryType
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time // inclusive, whole day
	Limit      int
}

// IncomeTotal aggregates entries of one type.
type IncomeTotal struct {
	EntryType EntryType       `json:"entryType"`
	Count     int             `json:"count"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeReport is the read-only aggregation over ledger entries.
type IncomeReport struct {
	Entries    []LedgerEntry   `json:"entries"`
	Totals     []IncomeTotal   `json:"totals"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}
