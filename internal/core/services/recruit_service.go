package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

// recruitService adjudicates downline registrations. It follows the same
// lock, check pending, mutate, resolve sequence as request approval.
type recruitService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	recruitRepo portsrepo.RecruitRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	walletRepo  portsrepo.WalletTransactionSupport
}

// NewRecruitService creates a new RecruitService.
func NewRecruitService(
	txManager portsrepo.TransactionManager,
	recruitRepo portsrepo.RecruitRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	walletRepo portsrepo.WalletTransactionSupport,
	options ...BaseOption,
) portssvc.RecruitSvcFacade {
	return &recruitService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		recruitRepo: recruitRepo,
		userRepo:    userRepo,
		walletRepo:  walletRepo,
	}
}

var _ portssvc.RecruitSvcFacade = (*recruitService)(nil)

func (s *recruitService) RegisterRecruit(ctx context.Context, sponsorID string, req dto.RegisterRecruitRequest) (*domain.PendingRecruit, error) {
	if _, err := s.userRepo.FindUserByID(ctx, sponsorID); err != nil {
		return nil, fmt.Errorf("failed to load sponsor %s: %w", sponsorID, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: recruit name is required", apperrors.ErrValidation)
	}

	recruit := domain.PendingRecruit{
		RecruitID:   uuid.NewString(),
		SponsorID:   sponsorID,
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Status:      domain.StatusPending,
		AuditFields: domain.NewAuditFields(sponsorID, s.Now()),
	}
	if err := s.recruitRepo.SaveRecruit(ctx, recruit); err != nil {
		s.LogError(ctx, err, "Failed to save recruit", slog.String("sponsor_id", sponsorID))
		return nil, fmt.Errorf("failed to save recruit: %w", err)
	}
	s.LogInfo(ctx, "Recruit registered", slog.String("recruit_id", recruit.RecruitID), slog.String("sponsor_id", sponsorID))
	return &recruit, nil
}

func (s *recruitService) ListRecruits(ctx context.Context, adminID string, status domain.RequestStatus, limit, offset int) ([]domain.PendingRecruit, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if offset < 0 {
		offset = 0
	}
	recruits, err := s.recruitRepo.ListRecruits(ctx, status, clampLimit(limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recruits")
		return nil, fmt.Errorf("failed to list recruits: %w", err)
	}
	return recruits, nil
}

func (s *recruitService) ApproveRecruit(ctx context.Context, recruitID string, adminID string, req dto.ApproveRecruitRequest) (*domain.PendingRecruit, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(req.PackageAmount); err != nil {
		return nil, fmt.Errorf("invalid package amount: %w", err)
	}
	position := domain.BinaryPosition(strings.ToUpper(req.Position))
	if !position.IsValid() {
		return nil, fmt.Errorf("%w: position must be LEFT or RIGHT", apperrors.ErrValidation)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	recruit, err := s.recruitRepo.FindRecruitForUpdate(ctx, tx, recruitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recruit %s: %w", recruitID, err)
	}
	now := s.Now()
	if !recruit.Resolve(domain.StatusApproved, adminID, now) {
		return nil, fmt.Errorf("%w: recruit %s is %s", apperrors.ErrRequestNotPending, recruitID, recruit.Status)
	}

	member := domain.User{
		UserID:      uuid.NewString(),
		Name:        recruit.Name,
		Role:        domain.RoleMember,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	if err := s.userRepo.SaveUserInTx(ctx, tx, member); err != nil {
		return nil, fmt.Errorf("failed to create member for recruit %s: %w", recruitID, err)
	}
	if err := s.walletRepo.SaveWalletInTx(ctx, tx, domain.NewWalletAccount(member.UserID, member.AuditFields)); err != nil {
		return nil, fmt.Errorf("failed to create wallet for recruit %s: %w", recruitID, err)
	}

	packageAmount := req.PackageAmount
	recruit.PackageAmount = &packageAmount
	recruit.Position = position
	recruit.UserID = &member.UserID
	if err := s.recruitRepo.UpdateRecruitResolutionInTx(ctx, tx, *recruit); err != nil {
		return nil, fmt.Errorf("failed to update recruit %s: %w", recruitID, err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit recruit approval", slog.String("recruit_id", recruitID))
		return nil, fmt.Errorf("failed to commit recruit approval: %w", err)
	}

	s.LogInfo(ctx, "Recruit approved",
		slog.String("recruit_id", recruitID),
		slog.String("member_id", member.UserID),
		slog.String("sponsor_id", recruit.SponsorID),
		slog.String("position", string(position)),
		slog.String("admin_id", adminID))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRecruitApproved,
		UserID:     recruit.SponsorID,
		ActorID:    adminID,
		ResourceID: recruitID,
		Amount:     &packageAmount,
		OccurredAt: now,
	})
	return recruit, nil
}

func (s *recruitService) RejectRecruit(ctx context.Context, recruitID string, adminID string, notes string) (*domain.PendingRecruit, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	recruit, err := s.recruitRepo.FindRecruitForUpdate(ctx, tx, recruitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recruit %s: %w", recruitID, err)
	}
	now := s.Now()
	if !recruit.Resolve(domain.StatusRejected, adminID, now) {
		return nil, fmt.Errorf("%w: recruit %s is %s", apperrors.ErrRequestNotPending, recruitID, recruit.Status)
	}
	recruit.AdminNotes = notes
	if err := s.recruitRepo.UpdateRecruitResolutionInTx(ctx, tx, *recruit); err != nil {
		return nil, fmt.Errorf("failed to update recruit %s: %w", recruitID, err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit recruit rejection: %w", err)
	}

	s.LogInfo(ctx, "Recruit rejected", slog.String("recruit_id", recruitID), slog.String("admin_id", adminID))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRecruitRejected,
		UserID:     recruit.SponsorID,
		ActorID:    adminID,
		ResourceID: recruitID,
		OccurredAt: now,
	})
	return recruit, nil
}
