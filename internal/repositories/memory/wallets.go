package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

func walletKey(userID string) string { return "wallet:" + userID }

func (s *Store) FindWalletByUserID(ctx context.Context, userID string) (*domain.WalletAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("wallet not found for user: " + userID)
	}
	return &w, nil
}

func (s *Store) FindWalletForUpdate(ctx context.Context, tx portsrepo.Tx, userID string) (*domain.WalletAccount, error) {
	mt, err := s.asTx(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, walletKey(userID)); err != nil {
		return nil, err
	}
	if w, ok := mt.wallets[userID]; ok {
		return &w, nil
	}
	return s.FindWalletByUserID(ctx, userID)
}

func (s *Store) UpdateWalletInTx(ctx context.Context, tx portsrepo.Tx, wallet domain.WalletAccount) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	if _, ok := mt.held[walletKey(wallet.UserID)]; !ok {
		return fmt.Errorf("memory: wallet %s updated without lock", wallet.UserID)
	}
	mt.wallets[wallet.UserID] = wallet
	return nil
}

func (s *Store) SaveWalletInTx(ctx context.Context, tx portsrepo.Tx, wallet domain.WalletAccount) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	if err := mt.lock(ctx, walletKey(wallet.UserID)); err != nil {
		return err
	}
	s.mu.RLock()
	_, exists := s.wallets[wallet.UserID]
	s.mu.RUnlock()
	if _, staged := mt.wallets[wallet.UserID]; exists || staged {
		return fmt.Errorf("%w: wallet for user %s", apperrors.ErrDuplicate, wallet.UserID)
	}
	mt.wallets[wallet.UserID] = wallet
	return nil
}
