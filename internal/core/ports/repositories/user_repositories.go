package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound when absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a page of users ordered by creation time.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserTransactionSupport defines user writes that take part in a larger transaction
type UserTransactionSupport interface {
	// SaveUserInTx inserts a user. Returns apperrors.ErrDuplicate on id collision.
	SaveUserInTx(ctx context.Context, tx Tx, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserTransactionSupport
}
