package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// RequestSubmitterSvc creates pending requests. Nothing here touches a wallet.
type RequestSubmitterSvc interface {
	// SubmitFundRequest records a pending request to add funds to userID's wallet.
	SubmitFundRequest(ctx context.Context, userID string, req dto.SubmitFundRequest) (*domain.MonetaryRequest, error)

	// SubmitWithdrawalRequest records a pending withdrawal. The amount must not exceed the
	// current balance; it is checked again at approval.
	SubmitWithdrawalRequest(ctx context.Context, userID string, req dto.SubmitWithdrawalRequest) (*domain.MonetaryRequest, error)

	// WithdrawOnBehalf lets an admin file a pending withdrawal for a member.
	WithdrawOnBehalf(ctx context.Context, adminID string, req dto.WithdrawPersonallyRequest) (*domain.MonetaryRequest, error)
}

// RequestAdjudicatorSvc resolves pending requests and performs direct adjustments.
// All methods require an admin caller.
type RequestAdjudicatorSvc interface {
	// Approve resolves a pending request and applies exactly one ledger mutation.
	// A nil overrideAmount approves the requested amount.
	Approve(ctx context.Context, requestID string, adminID string, overrideAmount *decimal.Decimal) (*domain.MonetaryRequest, error)

	// Reject resolves a pending request without touching the wallet.
	Reject(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error)

	// AnnotateRequest replaces AdminNotes in any status.
	AnnotateRequest(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error)

	// DirectAdjust credits (positive) or debits (negative) a wallet without a request.
	DirectAdjust(ctx context.Context, adminID string, userID string, signedAmount decimal.Decimal, remarks string) (*domain.WalletAccount, *domain.LedgerEntry, error)
}

// RequestReaderSvc exposes requests to their owners and to admins.
type RequestReaderSvc interface {
	GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.MonetaryRequest, error)

	// ListRequests restricts non-admin callers to their own requests regardless of filter.UserID.
	ListRequests(ctx context.Context, requestingUserID string, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error)
}

// AdjudicationSvcFacade combines all request-related service interfaces
type AdjudicationSvcFacade interface {
	RequestSubmitterSvc
	RequestAdjudicatorSvc
	RequestReaderSvc
}
