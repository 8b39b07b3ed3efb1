package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
)

type walletService struct {
	BaseService
	walletRepo portsrepo.WalletReader
	ledgerRepo portsrepo.LedgerReader
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletReader, ledgerRepo portsrepo.LedgerReader, options ...BaseOption) portssvc.WalletSvcFacade {
	return &walletService{
		BaseService: newBaseService(options...),
		walletRepo:  walletRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWallet(ctx context.Context, userID string, requestingUserID string) (*domain.WalletAccount, error) {
	if err := s.AuthorizeSelfOrAdmin(ctx, requestingUserID, userID); err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get wallet", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to get wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

func (s *walletService) ListLedger(ctx context.Context, userID string, requestingUserID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if err := s.AuthorizeSelfOrAdmin(ctx, requestingUserID, userID); err != nil {
		return nil, nil, err
	}
	entries, next, err := s.ledgerRepo.ListEntriesByUserID(ctx, userID, clampLimit(limit), nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list ledger entries", slog.String("user_id", userID))
		}
		return nil, nil, fmt.Errorf("failed to list ledger for user %s: %w", userID, err)
	}
	return entries, next, nil
}
