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

const walletColumns = `user_id, balance, total_earnings, total_withdrawals, created_at, created_by, last_updated_at, last_updated_by`

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(db *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func (r *PgxWalletRepository) FindWalletByUserID(ctx context.Context, userID string) (*domain.WalletAccount, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1;`, userID)
	return collectWallet(rows, userID)
}

// FindWalletForUpdate locks the wallet row for the remainder of tx.
func (r *PgxWalletRepository) FindWalletForUpdate(ctx context.Context, tx portsrepo.Tx, userID string) (*domain.WalletAccount, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	rows, _ := ptx.Query(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 FOR UPDATE;`, userID)
	return collectWallet(rows, userID)
}

func collectWallet(rows pgx.Rows, userID string) (*domain.WalletAccount, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Wallet])
	if err != nil {
		return nil, notFoundOr(err, "wallet for user "+userID)
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

func (r *PgxWalletRepository) UpdateWalletInTx(ctx context.Context, tx portsrepo.Tx, wallet domain.WalletAccount) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelWallet(wallet)
	query := `
		UPDATE wallets
		SET balance = $1, total_earnings = $2, total_withdrawals = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $6;
	`
	cmdTag, err := ptx.Exec(ctx, query, m.Balance, m.TotalEarnings, m.TotalWithdrawals, m.LastUpdatedAt, m.LastUpdatedBy, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update wallet for user %s: %w", m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("wallet for user " + m.UserID + " not found")
	}
	return nil
}

func (r *PgxWalletRepository) SaveWalletInTx(ctx context.Context, tx portsrepo.Tx, wallet domain.WalletAccount) error {
	ptx, err := pgxTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = ptx.Exec(ctx, query, m.UserID, m.Balance, m.TotalEarnings, m.TotalWithdrawals, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wallet for user %s already exists", apperrors.ErrDuplicate, m.UserID)
		}
		return fmt.Errorf("failed to save wallet for user %s: %w", m.UserID, err)
	}
	return nil
}
