package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// RequestReader defines read operations for monetary requests
type RequestReader interface {
	// FindRequestByID retrieves a request. Returns apperrors.ErrNotFound when absent.
	FindRequestByID(ctx context.Context, requestID string) (*domain.MonetaryRequest, error)

	// ListRequests returns requests matching filter, newest first, using token-based pagination.
	ListRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error)
}

// RequestWriter defines single-statement write operations
type RequestWriter interface {
	// SaveRequest inserts a new pending request.
	SaveRequest(ctx context.Context, request domain.MonetaryRequest) error

	// UpdateRequestNotes replaces admin notes only. Status and amounts are never touched.
	UpdateRequestNotes(ctx context.Context, requestID string, notes string, userID string) (*domain.MonetaryRequest, error)
}

// RequestTransactionSupport defines adjudication writes
type RequestTransactionSupport interface {
	// FindRequestForUpdate reads the request and holds its row lock until tx ends.
	FindRequestForUpdate(ctx context.Context, tx Tx, requestID string) (*domain.MonetaryRequest, error)

	// UpdateRequestResolutionInTx persists status, approved amount, processor and notes.
	UpdateRequestResolutionInTx(ctx context.Context, tx Tx, request domain.MonetaryRequest) error
}

// RequestRepositoryFacade combines all request-related repository interfaces
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
	RequestTransactionSupport
}
