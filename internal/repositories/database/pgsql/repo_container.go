package pgsql

import (
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:       &base,
		UserRepo:        newPgxUserRepository(dbPool),
		WalletRepo:      newPgxWalletRepository(dbPool),
		RequestRepo:     newPgxRequestRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		RecruitRepo:     newPgxRecruitRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		IdempotencyRepo: newPgxIdempotencyRepository(dbPool),
	}
}
