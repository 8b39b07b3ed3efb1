package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

func TestWalletService_GetWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMember(t, "member-2")
	f.fund(t, f.memberID, "42.50")

	wallet, err := f.wallets.GetWallet(ctx, f.memberID, f.memberID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec("42.50")))

	_, err = f.wallets.GetWallet(ctx, f.memberID, f.adminID)
	assert.NoError(t, err)

	_, err = f.wallets.GetWallet(ctx, f.memberID, "member-2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.wallets.GetWallet(ctx, "ghost", f.adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWalletService_ListLedgerPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.fund(t, f.memberID, "100")
	req, err := f.engine.SubmitWithdrawalRequest(ctx, f.memberID, dto.SubmitWithdrawalRequest{Amount: dec("40")})
	require.NoError(t, err)
	_, err = f.engine.Approve(ctx, req.RequestID, f.adminID, nil)
	require.NoError(t, err)
	f.fund(t, f.memberID, "5")

	page, next, err := f.wallets.ListLedger(ctx, f.memberID, f.memberID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, domain.EntryAdminCredit, page[0].EntryType, "newest first")
	assert.Equal(t, domain.EntryWithdrawal, page[1].EntryType)

	rest, next, err := f.wallets.ListLedger(ctx, f.memberID, f.memberID, 2, next)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, next)
	assert.True(t, rest[0].BalanceBefore.IsZero())
	assert.True(t, rest[0].BalanceAfter.Equal(dec("100")))

	// every entry chains onto the one before it
	all := append(append([]domain.LedgerEntry{}, rest...), page[1], page[0])
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].BalanceBefore.Equal(all[i-1].BalanceAfter))
		assert.True(t, all[i].BalanceAfter.Equal(all[i].BalanceBefore.Add(all[i].Amount)))
	}
	assert.True(t, all[len(all)-1].BalanceAfter.Equal(f.balance(t, f.memberID)))

	bad := "not-a-token"
	_, _, err = f.wallets.ListLedger(ctx, f.memberID, f.memberID, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	f.addMember(t, "member-2")
	_, _, err = f.wallets.ListLedger(ctx, f.memberID, "member-2", 2, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
