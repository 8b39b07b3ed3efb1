package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// WalletReaderSvc defines read operations for wallets and their ledgers.
// Members may only read their own; admins may read any.
type WalletReaderSvc interface {
	GetWallet(ctx context.Context, userID string, requestingUserID string) (*domain.WalletAccount, error)
	ListLedger(ctx context.Context, userID string, requestingUserID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
}
