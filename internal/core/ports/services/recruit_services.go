package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

// RecruitSvcFacade manages downline registrations awaiting approval.
type RecruitSvcFacade interface {
	// RegisterRecruit files a pending recruit sponsored by sponsorID.
	RegisterRecruit(ctx context.Context, sponsorID string, req dto.RegisterRecruitRequest) (*domain.PendingRecruit, error)

	// ListRecruits is admin only. An empty status lists all.
	ListRecruits(ctx context.Context, adminID string, status domain.RequestStatus, limit, offset int) ([]domain.PendingRecruit, error)

	// ApproveRecruit creates the member account and wallet and resolves the recruit.
	ApproveRecruit(ctx context.Context, recruitID string, adminID string, req dto.ApproveRecruitRequest) (*domain.PendingRecruit, error)

	// RejectRecruit resolves the recruit without creating an account.
	RejectRecruit(ctx context.Context, recruitID string, adminID string, notes string) (*domain.PendingRecruit, error)
}
