package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/mlm_backoffice/internal/models"
	"github.com/SscSPs/mlm_backoffice/internal/utils/mapping"
	"github.com/SscSPs/mlm_backoffice/internal/utils/pagination"
)

const requestColumns = `request_id, user_id, kind, amount, approved_amount, status,
	payment_method, external_transaction_id, receipt_url, withdrawal_type, remarks, admin_notes,
	processed_by, processed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxRequestRepository struct {
	BaseRepository
}

func newPgxRequestRepository(db *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func collectRequest(rows pgx.Rows, requestID string) (*domain.MonetaryRequest, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MonetaryRequest])
	if err != nil {
		return nil, notFoundOr(err, "request "+requestID)
	}
	d := mapping.ToDomainMonetaryRequest(m)
	return &d, nil
}

func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.MonetaryRequest, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+requestColumns+` FROM monetary_requests WHERE request_id = $1;`, requestID)
	return collectRequest(rows, requestID)
}

// ListRequests retrieves a page of requests ordered by (created_at DESC, request_id DESC).
func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error) {
	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != "" {
		addCondition("user_id = $%d", filter.UserID)
	}
	if filter.Kind != "" {
		addCondition("kind = $%d", string(filter.Kind))
	}
	if filter.Status != "" {
		addCondition("status = $%d", string(filter.Status))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, request_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM monetary_requests`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, request_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query requests: %w", err)
	}
	modelRequests, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MonetaryRequest])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan requests: %w", err)
	}

	var next *string
	if n := len(modelRequests); n > 0 {
		last := modelRequests[n-1]
		next = pagination.NextToken(n, limit, last.CreatedAt, last.RequestID)
	}
	return mapping.ToDomainMonetaryRequestSlice(modelRequests), next, nil
}

func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.MonetaryRequest) error {
	m := mapping.ToModelMonetaryRequest(request)
	query := `
		INSERT INTO monetary_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.UserID,
		m.Kind,
		m.Amount,
		m.ApprovedAmount,
		m.Status,
		m.PaymentMethod,
		m.ExternalTransactionID,
		m.ReceiptURL,
		m.WithdrawalType,
		m.Remarks,
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
			return fmt.Errorf("%w: request %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to save request %s: %w", m.RequestID, err)
	}
	return nil
}

// UpdateRequestNotes touches admin_notes only. A concurrent adjudication holding the row
// lock makes this statement wait for it.
func (r *PgxRequestRepository) UpdateRequestNotes(ctx context.Context, requestID string, notes string, userID string) (*domain.MonetaryRequest, error) {
	query := `
		UPDATE monetary_requests
		SET admin_notes = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE request_id = $3
		RETURNING ` + requestColumns + `;
	`
	rows, _ := r.Pool.Query(ctx, query, notes, userID, requestID)
	return collectRequest(rows, requestID)
}

func (r *PgxRequestRepository) FindRequestForUpdate(ctx context.Context, tx portsrepo.Tx, requestID string) (*domain.MonetaryRequest, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	rows, _ := ptx.Query(ctx, `SELECT `+requestColumns+` FROM monetary_requests WHERE request_id = $1 FOR UPDATE;`, requestID)
	return collectRequest(rows, requestID)
}

func (r *PgxRequestRepository) UpdateRequestResolutionInTx(ctx context.Context, tx portsrepo.Tx, request domain.MonetaryRequest) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelMonetaryRequest(request)
	query := `
		UPDATE monetary_requests
		SET status = $1, approved_amount = $2, admin_notes = $3, processed_by = $4, processed_at = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE request_id = $8;
	`
	cmdTag, err := ptx.Exec(ctx, query,
		m.Status,
		m.ApprovedAmount,
		m.AdminNotes,
		m.ProcessedBy,
		m.ProcessedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", m.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("request " + m.RequestID + " not found")
	}
	return nil
}
