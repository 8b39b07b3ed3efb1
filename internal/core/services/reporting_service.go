package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/utils/accounting"
)

const (
	defaultReportLimit = 500
	maxReportLimit     = 5000
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...BaseOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options...),
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetIncomeReport loads the rows and the per-type totals from one snapshot. Totals cover every
// matching entry even when the rows are truncated by the limit.
func (s *reportingService) GetIncomeReport(ctx context.Context, requestingUserID string, filter domain.IncomeReportFilter) (*domain.IncomeReport, error) {
	if filter.UserID != requestingUserID {
		err := s.AuthorizeAdmin(ctx, requestingUserID)
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized) && filter.UserID == "":
			filter.UserID = requestingUserID
		case errors.Is(err, apperrors.ErrUnauthorized):
			return nil, fmt.Errorf("%w: user %s may not view income of %s", apperrors.ErrForbidden, requestingUserID, filter.UserID)
		case err != nil:
			return nil, err
		}
	}
	for _, t := range filter.EntryTypes {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t)
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultReportLimit
	case filter.Limit > maxReportLimit:
		filter.Limit = maxReportLimit
	}

	entries, totals, err := s.reportingRepo.GetIncomeReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to build income report", slog.String("user_id", filter.UserID))
		return nil, fmt.Errorf("failed to build income report: %w", err)
	}

	s.LogDebug(ctx, "Income report generated",
		slog.String("user_id", filter.UserID),
		slog.Int("row_count", len(entries)))
	return &domain.IncomeReport{
		Entries:    entries,
		Totals:     totals,
		GrandTotal: accounting.GrandTotal(totals),
	}, nil
}
