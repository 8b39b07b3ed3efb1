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
	"github.com/SscSPs/mlm_backoffice/internal/utils/pagination"
)

const ledgerColumns = `entry_id, user_id, entry_type, amount, balance_before, balance_after, description, reference_id, created_by, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) ListEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query := `
			SELECT ` + ledgerColumns + `
			FROM ledger_entries
			WHERE user_id = $1 AND (created_at, entry_id) < ($2, $3)
			ORDER BY created_at DESC, entry_id DESC
			LIMIT $4;
		`
		rows, err = r.Pool.Query(ctx, query, userID, lastCreatedAt, lastID, limit)
	} else {
		query := `
			SELECT ` + ledgerColumns + `
			FROM ledger_entries
			WHERE user_id = $1
			ORDER BY created_at DESC, entry_id DESC
			LIMIT $2;
		`
		rows, err = r.Pool.Query(ctx, query, userID, limit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries for user %s: %w", userID, err)
	}

	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}

	var next *string
	if n := len(modelEntries); n > 0 {
		last := modelEntries[n-1]
		next = pagination.NextToken(n, limit, last.CreatedAt, last.EntryID)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), next, nil
}

func (r *PgxLedgerRepository) FindEntriesByReferenceID(ctx context.Context, referenceID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE reference_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for reference %s: %w", referenceID, err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// InsertEntryInTx appends an entry. The partial unique index on reference_id turns a second
// entry for the same request into apperrors.ErrDuplicate.
func (r *PgxLedgerRepository) InsertEntryInTx(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = ptx.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.EntryType,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.ReferenceID,
		m.CreatedBy,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry for reference already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}
