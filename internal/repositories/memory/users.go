package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found: " + userID)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	s.mu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].UserID < users[j].UserID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return paginate(users, limit, offset), nil
}

func (s *Store) SaveUserInTx(ctx context.Context, tx portsrepo.Tx, user domain.User) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	s.mu.RLock()
	_, exists := s.users[user.UserID]
	s.mu.RUnlock()
	if _, staged := mt.users[user.UserID]; exists || staged {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	mt.users[user.UserID] = user
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
