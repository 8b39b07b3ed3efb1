package repositories

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// WalletReader defines lock-free read operations on wallets
type WalletReader interface {
	// FindWalletByUserID returns the committed wallet state for userID.
	FindWalletByUserID(ctx context.Context, userID string) (*domain.WalletAccount, error)
}

// WalletTransactionSupport defines wallet operations that must run inside a transaction
type WalletTransactionSupport interface {
	// FindWalletForUpdate reads the wallet and holds its row lock until tx ends.
	FindWalletForUpdate(ctx context.Context, tx Tx, userID string) (*domain.WalletAccount, error)

	// UpdateWalletInTx persists balance and cumulative totals.
	UpdateWalletInTx(ctx context.Context, tx Tx, wallet domain.WalletAccount) error

	// SaveWalletInTx inserts a new wallet.
	SaveWalletInTx(ctx context.Context, tx Tx, wallet domain.WalletAccount) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletTransactionSupport
}
