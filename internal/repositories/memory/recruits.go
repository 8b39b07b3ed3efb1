package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

func recruitKey(recruitID string) string { return "recruit:" + recruitID }

func (s *Store) FindRecruitByID(ctx context.Context, recruitID string) (*domain.PendingRecruit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recruits[recruitID]
	if !ok {
		return nil, apperrors.NewNotFoundError("recruit not found: " + recruitID)
	}
	return &r, nil
}

func (s *Store) ListRecruits(ctx context.Context, status domain.RequestStatus, limit int, offset int) ([]domain.PendingRecruit, error) {
	s.mu.RLock()
	matched := make([]domain.PendingRecruit, 0)
	for _, r := range s.recruits {
		if status != "" && r.Status != status {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newestFirst(matched[i].CreatedAt, matched[i].RecruitID, matched[j].CreatedAt, matched[j].RecruitID)
	})
	return paginate(matched, limit, offset), nil
}

func (s *Store) SaveRecruit(ctx context.Context, recruit domain.PendingRecruit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recruits[recruit.RecruitID]; exists {
		return fmt.Errorf("%w: recruit %s", apperrors.ErrDuplicate, recruit.RecruitID)
	}
	s.recruits[recruit.RecruitID] = recruit
	return nil
}

func (s *Store) FindRecruitForUpdate(ctx context.Context, tx portsrepo.Tx, recruitID string) (*domain.PendingRecruit, error) {
	mt, err := s.asTx(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, recruitKey(recruitID)); err != nil {
		return nil, err
	}
	if r, ok := mt.recruits[recruitID]; ok {
		return &r, nil
	}
	return s.FindRecruitByID(ctx, recruitID)
}

func (s *Store) UpdateRecruitResolutionInTx(ctx context.Context, tx portsrepo.Tx, recruit domain.PendingRecruit) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	if _, ok := mt.held[recruitKey(recruit.RecruitID)]; !ok {
		return fmt.Errorf("memory: recruit %s updated without lock", recruit.RecruitID)
	}
	mt.recruits[recruit.RecruitID] = recruit
	return nil
}
