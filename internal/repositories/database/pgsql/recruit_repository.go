package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/mlm_backoffice/internal/models"
	"github.com/SscSPs/mlm_backoffice/internal/utils/mapping"
)

const recruitColumns = `recruit_id, sponsor_id, name, email, status, package_amount, position, user_id,
	admin_notes, processed_by, processed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecruitRepository struct {
	BaseRepository
}

func newPgxRecruitRepository(db *pgxpool.Pool) portsrepo.RecruitRepositoryFacade {
	return &PgxRecruitRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RecruitRepositoryFacade = (*PgxRecruitRepository)(nil)

func collectRecruit(rows pgx.Rows, recruitID string) (*domain.PendingRecruit, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PendingRecruit])
	if err != nil {
		return nil, notFoundOr(err, "recruit "+recruitID)
	}
	d := mapping.ToDomainRecruit(m)
	return &d, nil
}

func (r *PgxRecruitRepository) FindRecruitByID(ctx context.Context, recruitID string) (*domain.PendingRecruit, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+recruitColumns+` FROM pending_recruits WHERE recruit_id = $1;`, recruitID)
	return collectRecruit(rows, recruitID)
}

func (r *PgxRecruitRepository) ListRecruits(ctx context.Context, status domain.RequestStatus, limit int, offset int) ([]domain.PendingRecruit, error) {
	query := `
		SELECT ` + recruitColumns + `
		FROM pending_recruits
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, recruit_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query recruits: %w", err)
	}
	modelRecruits, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PendingRecruit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan recruits: %w", err)
	}
	return mapping.ToDomainRecruitSlice(modelRecruits), nil
}

func (r *PgxRecruitRepository) SaveRecruit(ctx context.Context, recruit domain.PendingRecruit) error {
	m := mapping.ToModelRecruit(recruit)
	query := `
		INSERT INTO pending_recruits (` + recruitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RecruitID,
		m.SponsorID,
		m.Name,
		m.Email,
		m.Status,
		m.PackageAmount,
		m.Position,
		m.UserID,
		m.AdminNotes,
		m.ProcessedBy,
		m.ProcessedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: recruit %s already exists", apperrors.ErrDuplicate, m.RecruitID)
		}
		return fmt.Errorf("failed to save recruit %s: %w", m.RecruitID, err)
	}
	return nil
}

func (r *PgxRecruitRepository) FindRecruitForUpdate(ctx context.Context, tx portsrepo.Tx, recruitID string) (*domain.PendingRecruit, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	rows, _ := ptx.Query(ctx, `SELECT `+recruitColumns+` FROM pending_recruits WHERE recruit_id = $1 FOR UPDATE;`, recruitID)
	return collectRecruit(rows, recruitID)
}

func (r *PgxRecruitRepository) UpdateRecruitResolutionInTx(ctx context.Context, tx portsrepo.Tx, recruit domain.PendingRecruit) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelRecruit(recruit)
	query := `
		UPDATE pending_recruits
		SET status = $1, package_amount = $2, position = $3, user_id = $4, admin_notes = $5,
			processed_by = $6, processed_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE recruit_id = $10;
	`
	cmdTag, err := ptx.Exec(ctx, query,
		m.Status,
		m.PackageAmount,
		m.Position,
		m.UserID,
		m.AdminNotes,
		m.ProcessedBy,
		m.ProcessedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RecruitID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recruit %s: %w", m.RecruitID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recruit " + m.RecruitID + " not found")
	}
	return nil
}
