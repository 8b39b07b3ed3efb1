package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// ReportingService defines the interface for income reporting
type ReportingService interface {
	// GetIncomeReport aggregates ledger entries. Non-admin callers only see their own entries.
	GetIncomeReport(ctx context.Context, requestingUserID string, filter domain.IncomeReportFilter) (*domain.IncomeReport, error)
}
