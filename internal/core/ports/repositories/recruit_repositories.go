package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// RecruitReader defines read operations for pending recruits
type RecruitReader interface {
	FindRecruitByID(ctx context.Context, recruitID string) (*domain.PendingRecruit, error)

	// ListRecruits returns recruits in the given status (all when empty), newest first.
	ListRecruits(ctx context.Context, status domain.RequestStatus, limit int, offset int) ([]domain.PendingRecruit, error)
}

// RecruitWriter defines write operations for pending recruits
type RecruitWriter interface {
	SaveRecruit(ctx context.Context, recruit domain.PendingRecruit) error
}

// RecruitTransactionSupport defines recruit adjudication writes
type RecruitTransactionSupport interface {
	FindRecruitForUpdate(ctx context.Context, tx Tx, recruitID string) (*domain.PendingRecruit, error)
	UpdateRecruitResolutionInTx(ctx context.Context, tx Tx, recruit domain.PendingRecruit) error
}

// RecruitRepositoryFacade combines all recruit-related repository interfaces
type RecruitRepositoryFacade interface {
	RecruitReader
	RecruitWriter
	RecruitTransactionSupport
}
