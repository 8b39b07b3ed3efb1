package memory

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/utils/accounting"
)

func (s *Store) matchIncome(filter domain.IncomeReportFilter) []domain.LedgerEntry {
	types := make(map[domain.EntryType]struct{}, len(filter.EntryTypes))
	for _, t := range filter.EntryTypes {
		types[t] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.LedgerEntry, 0)
	for _, e := range s.entries {
		if len(types) > 0 {
			if _, ok := types[e.EntryType]; !ok {
				continue
			}
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && e.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !e.CreatedAt.Before(filter.EndDate.AddDate(0, 0, 1)) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// GetIncomeReport matches under a single read lock, so rows and totals see the same entries.
func (s *Store) GetIncomeReport(ctx context.Context, filter domain.IncomeReportFilter) ([]domain.LedgerEntry, []domain.IncomeTotal, error) {
	matched := s.matchIncome(filter)
	totals, _ := accounting.SummarizeEntries(matched)

	sortEntries(matched)
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, totals, nil
}
