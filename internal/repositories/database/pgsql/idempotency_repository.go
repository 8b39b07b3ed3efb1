package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

func newPgxIdempotencyRepository(db *pgxpool.Pool) portsrepo.IdempotencyRepository {
	return &PgxIdempotencyRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

func (r *PgxIdempotencyRepository) FindResponse(ctx context.Context, userID string, key string) (*domain.IdempotentResponse, error) {
	query := `
		SELECT idempotency_key, user_id, method, path, status_code, body, created_at
		FROM idempotency_keys
		WHERE user_id = $1 AND idempotency_key = $2;
	`
	var resp domain.IdempotentResponse
	err := r.Pool.QueryRow(ctx, query, userID, key).Scan(
		&resp.Key,
		&resp.UserID,
		&resp.Method,
		&resp.Path,
		&resp.StatusCode,
		&resp.Body,
		&resp.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "idempotency key "+key)
	}
	return &resp, nil
}

// SaveResponse upserts so an expired entry can be replaced under the same key.
func (r *PgxIdempotencyRepository) SaveResponse(ctx context.Context, resp domain.IdempotentResponse) error {
	query := `
		INSERT INTO idempotency_keys (idempotency_key, user_id, method, path, status_code, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, idempotency_key) DO UPDATE SET
			method = EXCLUDED.method,
			path = EXCLUDED.path,
			status_code = EXCLUDED.status_code,
			body = EXCLUDED.body,
			created_at = EXCLUDED.created_at;
	`
	_, err := r.Pool.Exec(ctx, query, resp.Key, resp.UserID, resp.Method, resp.Path, resp.StatusCode, resp.Body, resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save idempotent response: %w", err)
	}
	return nil
}
