package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// userService manages back-office users and answers admin authorization checks.
type userService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	userRepo   portsrepo.UserRepositoryFacade
	walletRepo portsrepo.WalletTransactionSupport
}

// NewUserService creates a new UserService.
func NewUserService(txManager portsrepo.TransactionManager, userRepo portsrepo.UserRepositoryFacade, walletRepo portsrepo.WalletTransactionSupport, options ...BaseOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		userRepo:    userRepo,
		walletRepo:  walletRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser is admin only.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}
	role := domain.RoleMember
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	user := domain.User{
		UserID:      uuid.NewString(),
		Name:        req.Name,
		Role:        role,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.createWithWallet(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)), slog.String("created_by", creatorUserID))
	return &user, nil
}

func (s *userService) EnsureUser(ctx context.Context, userID string, name string, role domain.UserRole) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByID(ctx, userID)
	if err == nil {
		if existing.Role != role {
			s.LogWarn(ctx, "Existing user has a different role, leaving unchanged",
				slog.String("user_id", userID), slog.String("role", string(existing.Role)), slog.String("wanted", string(role)))
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}

	user := domain.User{
		UserID:      userID,
		Name:        name,
		Role:        role,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.createWithWallet(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// lost a race with another instance
			return s.userRepo.FindUserByID(ctx, userID)
		}
		return nil, err
	}
	s.LogInfo(ctx, "User bootstrapped", slog.String("user_id", userID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) createWithWallet(ctx context.Context, user domain.User) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	if err := s.walletRepo.SaveWalletInTx(ctx, tx, domain.NewWalletAccount(user.UserID, user.AuditFields)); err != nil {
		return fmt.Errorf("failed to create wallet for user %s: %w", user.UserID, err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}
	return nil
}

// AuthorizeAdmin treats unknown users as non-admins.
func (s *userService) AuthorizeAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not an admin", apperrors.ErrUnauthorized, userID)
		}
		s.LogError(ctx, err, "Failed to load user for authorization", slog.String("user_id", userID))
		return fmt.Errorf("failed to authorize user %s: %w", userID, err)
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%w: user %s is not an admin", apperrors.ErrUnauthorized, userID)
	}
	return nil
}

func (s *userService) AuthorizeSelfOrAdmin(ctx context.Context, requestingUserID string, ownerUserID string) error {
	if requestingUserID != "" && requestingUserID == ownerUserID {
		return nil
	}
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return fmt.Errorf("%w: user %s may not access resources of %s", apperrors.ErrForbidden, requestingUserID, ownerUserID)
		}
		return err
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
