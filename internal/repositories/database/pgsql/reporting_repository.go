package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/mlm_backoffice/internal/models"
	"github.com/SscSPs/mlm_backoffice/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// incomeWhere builds the shared WHERE clause. The end date covers the whole day.
func incomeWhere(filter domain.IncomeReportFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if len(filter.EntryTypes) > 0 {
		types := make([]string, len(filter.EntryTypes))
		for i, t := range filter.EntryTypes {
			types[i] = string(t)
		}
		args = append(args, types)
		conditions = append(conditions, fmt.Sprintf("entry_type = ANY($%d)", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// GetIncomeReport runs the row and total queries in one read-only REPEATABLE READ transaction
// so a commit landing between them cannot make the totals disagree with the rows.
func (r *reportingRepository) GetIncomeReport(ctx context.Context, filter domain.IncomeReportFilter) ([]domain.LedgerEntry, []domain.IncomeTotal, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, fmt.Errorf("error starting income report snapshot: %w", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	entries, err := incomeEntries(ctx, tx, filter)
	if err != nil {
		return nil, nil, err
	}
	totals, err := incomeTotals(ctx, tx, filter)
	if err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return entries, totals, nil
}

// incomeEntries retrieves matching ledger entries, newest first
func incomeEntries(ctx context.Context, tx pgx.Tx, filter domain.IncomeReportFilter) ([]domain.LedgerEntry, error) {
	where, args := incomeWhere(filter)
	args = append(args, filter.Limit)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d`, len(args))

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying income entries: %w", err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, fmt.Errorf("error scanning income entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// incomeTotals aggregates every matching entry by type, ignoring the row limit
func incomeTotals(ctx context.Context, tx pgx.Tx, filter domain.IncomeReportFilter) ([]domain.IncomeTotal, error) {
	where, args := incomeWhere(filter)
	query := `
		SELECT entry_type, COUNT(*) AS entry_count, COALESCE(SUM(amount), 0) AS total
		FROM ledger_entries` + where + `
		GROUP BY entry_type
	`
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying income totals: %w", err)
	}
	defer rows.Close()

	byType := make(map[domain.EntryType]domain.IncomeTotal)
	for rows.Next() {
		var total domain.IncomeTotal
		var entryType string
		if err := rows.Scan(&entryType, &total.Count, &total.Amount); err != nil {
			return nil, fmt.Errorf("error scanning income total row: %w", err)
		}
		total.EntryType = domain.EntryType(entryType)
		byType[total.EntryType] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income total rows: %w", err)
	}

	result := make([]domain.IncomeTotal, 0, len(byType))
	for _, t := range domain.AllEntryTypes {
		if total, ok := byType[t]; ok {
			result = append(result, total)
		}
	}
	return result, nil
}
