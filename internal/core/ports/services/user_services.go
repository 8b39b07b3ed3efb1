package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user together with an empty wallet.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// EnsureUser creates userID with role when it does not exist yet. Used to bootstrap the first admin.
	EnsureUser(ctx context.Context, userID string, name string, role domain.UserRole) (*domain.User, error)
}

// AdminAuthorizerSvc gates admin-only operations.
type AdminAuthorizerSvc interface {
	// AuthorizeAdmin returns apperrors.ErrUnauthorized unless userID is an admin.
	AuthorizeAdmin(ctx context.Context, userID string) error

	// AuthorizeSelfOrAdmin returns apperrors.ErrForbidden unless the caller owns the resource or is an admin.
	AuthorizeSelfOrAdmin(ctx context.Context, requestingUserID string, ownerUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AdminAuthorizerSvc
}
