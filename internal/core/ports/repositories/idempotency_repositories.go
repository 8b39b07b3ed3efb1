package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// IdempotencyRepository stores responses keyed by (user, Idempotency-Key).
type IdempotencyRepository interface {
	// FindResponse returns apperrors.ErrNotFound when no response is stored.
	FindResponse(ctx context.Context, userID string, key string) (*domain.IdempotentResponse, error)

	// SaveResponse stores resp, replacing any earlier (expired) entry for the same key.
	SaveResponse(ctx context.Context, resp domain.IdempotentResponse) error
}
