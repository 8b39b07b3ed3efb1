package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/mlm_backoffice/internal/utils/pagination"
)

func (s *Store) ListEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	var (
		curAt  time.Time
		curID  string
		cursor bool
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		curAt, curID, cursor = at, id, true
	}

	s.mu.RLock()
	matched := make([]domain.LedgerEntry, 0)
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if cursor && !afterCursor(e.CreatedAt, e.EntryID, curAt, curID) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sortEntries(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	var next *string
	if n := len(matched); n > 0 {
		last := matched[n-1]
		next = pagination.NextToken(n, limit, last.CreatedAt, last.EntryID)
	}
	return matched, next, nil
}

func (s *Store) FindEntriesByReferenceID(ctx context.Context, referenceID string) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.LedgerEntry, 0, 1)
	for _, e := range s.entries {
		if e.ReferenceID != nil && *e.ReferenceID == referenceID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// InsertEntryInTx rejects a second entry for the same reference, like the unique index in Postgres.
func (s *Store) InsertEntryInTx(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	if entry.ReferenceID != nil {
		s.mu.RLock()
		_, exists := s.entryRefs[*entry.ReferenceID]
		s.mu.RUnlock()
		if exists {
			return fmt.Errorf("%w: ledger entry for reference %s", apperrors.ErrDuplicate, *entry.ReferenceID)
		}
		for _, staged := range mt.entries {
			if staged.ReferenceID != nil && *staged.ReferenceID == *entry.ReferenceID {
				return fmt.Errorf("%w: ledger entry for reference %s", apperrors.ErrDuplicate, *entry.ReferenceID)
			}
		}
	}
	mt.entries = append(mt.entries, entry)
	return nil
}

func sortEntries(entries []domain.LedgerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return newestFirst(entries[i].CreatedAt, entries[i].EntryID, entries[j].CreatedAt, entries[j].EntryID)
	})
}
