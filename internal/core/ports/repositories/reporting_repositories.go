package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// ReportingRepository defines read-only aggregations over ledger entries
type ReportingRepository interface {
	// GetIncomeReport returns the matching entries newest first, capped at filter.Limit, and
	// one total per entry type over every matching entry. Both are read from the same snapshot,
	// so the totals always agree with the rows.
	GetIncomeReport(ctx context.Context, filter domain.IncomeReportFilter) ([]domain.LedgerEntry, []domain.IncomeTotal, error)
}
