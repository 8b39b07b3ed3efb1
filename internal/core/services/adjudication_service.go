package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/utils"
	"github.com/SscSPs/mlm_backoffice/internal/utils/accounting"
)

// adjudicationService moves requests out of PENDING and applies their wallet effect.
// Every decision runs in one transaction that locks the request row, then the wallet row.
type adjudicationService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	requestRepo portsrepo.RequestRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	ledgerRepo  portsrepo.LedgerTransactionSupport
}

// NewAdjudicationService creates a new AdjudicationService.
func NewAdjudicationService(
	txManager portsrepo.TransactionManager,
	requestRepo portsrepo.RequestRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	ledgerRepo portsrepo.LedgerTransactionSupport,
	options ...BaseOption,
) portssvc.AdjudicationSvcFacade {
	return &adjudicationService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		requestRepo: requestRepo,
		walletRepo:  walletRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AdjudicationSvcFacade = (*adjudicationService)(nil)

func (s *adjudicationService) SubmitFundRequest(ctx context.Context, userID string, req dto.SubmitFundRequest) (*domain.MonetaryRequest, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("invalid fund request: %w", err)
	}
	if _, err := s.walletRepo.FindWalletByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load wallet for user %s: %w", userID, err)
	}

	request := domain.MonetaryRequest{
		RequestID: uuid.NewString(),
		UserID:    userID,
		Kind:      domain.FundRequest,
		Amount:    req.Amount,
		Status:    domain.StatusPending,
		Payment: domain.PaymentDetails{
			PaymentMethod:         req.PaymentMethod,
			ExternalTransactionID: req.TransactionID,
			ReceiptURL:            req.ReceiptURL,
		},
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	return s.save(ctx, request)
}

func (s *adjudicationService) SubmitWithdrawalRequest(ctx context.Context, userID string, req dto.SubmitWithdrawalRequest) (*domain.MonetaryRequest, error) {
	return s.submitWithdrawal(ctx, userID, userID, req.Amount, req.Remarks, "")
}

func (s *adjudicationService) WithdrawOnBehalf(ctx context.Context, adminID string, req dto.WithdrawPersonallyRequest) (*domain.MonetaryRequest, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.submitWithdrawal(ctx, req.UserID, adminID, req.Amount, req.Remarks, req.WithdrawalType)
}

func (s *adjudicationService) submitWithdrawal(ctx context.Context, userID, actorID string, amount decimal.Decimal, remarks, withdrawalType string) (*domain.MonetaryRequest, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("invalid withdrawal request: %w", err)
	}
	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet for user %s: %w", userID, err)
	}
	if !wallet.CanDebit(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than requested %s", apperrors.ErrInsufficientFunds,
			utils.FormatMoney(wallet.Balance), utils.FormatMoney(amount))
	}

	request := domain.MonetaryRequest{
		RequestID:      uuid.NewString(),
		UserID:         userID,
		Kind:           domain.WithdrawalRequest,
		Amount:         amount,
		Status:         domain.StatusPending,
		WithdrawalType: withdrawalType,
		Remarks:        remarks,
		AuditFields:    domain.NewAuditFields(actorID, s.Now()),
	}
	return s.save(ctx, request)
}

func (s *adjudicationService) save(ctx context.Context, request domain.MonetaryRequest) (*domain.MonetaryRequest, error) {
	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save request", slog.String("user_id", request.UserID), slog.String("kind", string(request.Kind)))
		return nil, fmt.Errorf("failed to save request: %w", err)
	}
	s.LogInfo(ctx, "Request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("user_id", request.UserID),
		slog.String("kind", string(request.Kind)),
		slog.String("amount", request.Amount.String()),
		slog.String("created_by", request.CreatedBy))

	amount := request.Amount
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRequestSubmitted,
		UserID:     request.UserID,
		ActorID:    request.CreatedBy,
		ResourceID: request.RequestID,
		Amount:     &amount,
	})
	return &request, nil
}

func (s *adjudicationService) Approve(ctx context.Context, requestID string, adminID string, overrideAmount *decimal.Decimal) (*domain.MonetaryRequest, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if overrideAmount != nil {
		if err := domain.ValidateAmount(*overrideAmount); err != nil {
			return nil, fmt.Errorf("invalid approved amount: %w", err)
		}
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	request, err := s.requestRepo.FindRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %s: %w", requestID, err)
	}
	if request.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrRequestNotPending, requestID, request.Status)
	}

	amount := request.Amount
	if overrideAmount != nil {
		amount = *overrideAmount
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: request %s has non-positive amount", apperrors.ErrInvalidAmount, requestID)
	}

	wallet, err := s.walletRepo.FindWalletForUpdate(ctx, tx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet for user %s: %w", request.UserID, err)
	}

	now := s.Now()
	delta := request.SignedAmount(amount)
	before, after, err := wallet.Apply(delta)
	if err != nil {
		s.LogWarn(ctx, "Approval refused, balance changed since submission",
			slog.String("request_id", requestID),
			slog.String("user_id", request.UserID),
			slog.String("balance", before.String()),
			slog.String("amount", amount.String()))
		return nil, fmt.Errorf("cannot approve request %s: %w", requestID, err)
	}
	if err := accounting.ApplyToTotals(wallet, request.EntryType(), delta); err != nil {
		return nil, err
	}
	wallet.Touch(adminID, now)
	if err := s.walletRepo.UpdateWalletInTx(ctx, tx, *wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet for user %s: %w", request.UserID, err)
	}

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		UserID:        request.UserID,
		EntryType:     request.EntryType(),
		Amount:        delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   approvalDescription(request, amount),
		ReferenceID:   &request.RequestID,
		CreatedBy:     adminID,
		CreatedAt:     now,
	}
	if err := s.ledgerRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: request %s already has a ledger entry", apperrors.ErrRequestNotPending, requestID)
		}
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	request.ApprovedAmount = &amount
	request.Resolve(domain.StatusApproved, adminID, now)
	if err := s.requestRepo.UpdateRequestResolutionInTx(ctx, tx, *request); err != nil {
		return nil, fmt.Errorf("failed to update request %s: %w", requestID, err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit approval", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	s.LogInfo(ctx, "Request approved",
		slog.String("request_id", requestID),
		slog.String("user_id", request.UserID),
		slog.String("admin_id", adminID),
		slog.String("amount", delta.String()),
		slog.String("balance_after", after.String()))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRequestApproved,
		UserID:     request.UserID,
		ActorID:    adminID,
		ResourceID: requestID,
		Amount:     &delta,
		Balance:    &after,
		OccurredAt: now,
	})
	return request, nil
}

func approvalDescription(request *domain.MonetaryRequest, amount decimal.Decimal) string {
	if request.Kind == domain.WithdrawalRequest {
		if request.WithdrawalType != "" {
			return fmt.Sprintf("Withdrawal (%s) of %s approved", request.WithdrawalType, utils.FormatMoney(amount))
		}
		return fmt.Sprintf("Withdrawal of %s approved", utils.FormatMoney(amount))
	}
	return fmt.Sprintf("Fund request of %s approved", utils.FormatMoney(amount))
}

func (s *adjudicationService) Reject(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	request, err := s.requestRepo.FindRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %s: %w", requestID, err)
	}
	now := s.Now()
	if !request.Resolve(domain.StatusRejected, adminID, now) {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrRequestNotPending, requestID, request.Status)
	}
	if notes != "" {
		request.AdminNotes = notes
	}
	if err := s.requestRepo.UpdateRequestResolutionInTx(ctx, tx, *request); err != nil {
		return nil, fmt.Errorf("failed to update request %s: %w", requestID, err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit rejection", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to commit rejection: %w", err)
	}

	s.LogInfo(ctx, "Request rejected",
		slog.String("request_id", requestID),
		slog.String("user_id", request.UserID),
		slog.String("admin_id", adminID))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRequestRejected,
		UserID:     request.UserID,
		ActorID:    adminID,
		ResourceID: requestID,
		OccurredAt: now,
	})
	return request, nil
}

func (s *adjudicationService) AnnotateRequest(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	request, err := s.requestRepo.UpdateRequestNotes(ctx, requestID, notes, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate request %s: %w", requestID, err)
	}
	s.LogInfo(ctx, "Request annotated", slog.String("request_id", requestID), slog.String("admin_id", adminID))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventRequestAnnotated,
		UserID:     request.UserID,
		ActorID:    adminID,
		ResourceID: requestID,
	})
	return request, nil
}

// DirectAdjust is the single-step privileged path. Every call is logged at WARN as its audit trail.
func (s *adjudicationService) DirectAdjust(ctx context.Context, adminID string, userID string, signedAmount decimal.Decimal, remarks string) (*domain.WalletAccount, *domain.LedgerEntry, error) {
	if err := s.AuthorizeAdmin(ctx, adminID); err != nil {
		return nil, nil, err
	}
	if signedAmount.IsZero() {
		return nil, nil, fmt.Errorf("%w: adjustment amount must be non-zero", apperrors.ErrInvalidAmount)
	}
	if err := domain.ValidateAmount(signedAmount.Abs()); err != nil {
		return nil, nil, fmt.Errorf("invalid adjustment: %w", err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.txManager, tx)

	wallet, err := s.walletRepo.FindWalletForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet for user %s: %w", userID, err)
	}

	now := s.Now()
	before, after, err := wallet.Apply(signedAmount)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot adjust wallet of %s: %w", userID, err)
	}
	entryType := accounting.AdjustmentEntryType(signedAmount)
	if err := accounting.ApplyToTotals(wallet, entryType, signedAmount); err != nil {
		return nil, nil, err
	}
	wallet.Touch(adminID, now)
	if err := s.walletRepo.UpdateWalletInTx(ctx, tx, *wallet); err != nil {
		return nil, nil, fmt.Errorf("failed to update wallet for user %s: %w", userID, err)
	}

	description := remarks
	if description == "" {
		description = fmt.Sprintf("Admin adjustment of %s", utils.FormatMoney(signedAmount))
	}
	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		UserID:        userID,
		EntryType:     entryType,
		Amount:        signedAmount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		CreatedBy:     adminID,
		CreatedAt:     now,
	}
	if err := s.ledgerRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
		return nil, nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit direct adjustment", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to commit direct adjustment: %w", err)
	}

	s.LogWarn(ctx, "Direct wallet adjustment",
		slog.String("admin_id", adminID),
		slog.String("user_id", userID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", signedAmount.String()),
		slog.String("balance_before", before.String()),
		slog.String("balance_after", after.String()),
		slog.String("remarks", remarks))
	s.PublishEvent(ctx, domain.Event{
		Type:       domain.EventWalletAdjusted,
		UserID:     userID,
		ActorID:    adminID,
		ResourceID: entry.EntryID,
		Amount:     &signedAmount,
		Balance:    &after,
		OccurredAt: now,
	})
	return wallet, &entry, nil
}

func (s *adjudicationService) GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.MonetaryRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := s.AuthorizeSelfOrAdmin(ctx, requestingUserID, request.UserID); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *adjudicationService) ListRequests(ctx context.Context, requestingUserID string, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error) {
	if filter.UserID != requestingUserID {
		err := s.AuthorizeAdmin(ctx, requestingUserID)
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized) && filter.UserID == "":
			filter.UserID = requestingUserID
		case errors.Is(err, apperrors.ErrUnauthorized):
			return nil, nil, fmt.Errorf("%w: user %s may not list requests of %s", apperrors.ErrForbidden, requestingUserID, filter.UserID)
		case err != nil:
			return nil, nil, err
		}
	}
	requests, next, err := s.requestRepo.ListRequests(ctx, filter, clampLimit(limit), nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list requests")
		}
		return nil, nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, next, nil
}
