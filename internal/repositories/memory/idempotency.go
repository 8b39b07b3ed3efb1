package memory

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

func idempotencyKey(userID, key string) string { return userID + "|" + key }

func (s *Store) FindResponse(ctx context.Context, userID string, key string) (*domain.IdempotentResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp, ok := s.idempotency[idempotencyKey(userID, key)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	resp.Body = append([]byte(nil), resp.Body...)
	return &resp, nil
}

func (s *Store) SaveResponse(ctx context.Context, resp domain.IdempotentResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp.Body = append([]byte(nil), resp.Body...)
	s.idempotency[idempotencyKey(resp.UserID, resp.Key)] = resp
	return nil
}
