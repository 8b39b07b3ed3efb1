package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWallet(t *testing.T, s *Store, userID string, balance string) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	w := domain.NewWalletAccount(userID, domain.NewAuditFields("seed", time.Now().UTC()))
	w.Balance = decimal.RequireFromString(balance)
	require.NoError(t, s.SaveWalletInTx(ctx, tx, w))
	require.NoError(t, tx.Commit(ctx))
}

func TestCommitAppliesStagedWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedWallet(t, s, "u1", "100")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	w, err := s.FindWalletForUpdate(ctx, tx, "u1")
	require.NoError(t, err)
	w.Balance = decimal.RequireFromString("150")
	require.NoError(t, s.UpdateWalletInTx(ctx, tx, *w))

	// not visible before commit
	committed, err := s.FindWalletByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, committed.Balance.Equal(decimal.NewFromInt(100)))

	require.NoError(t, s.Commit(ctx, tx))
	committed, err = s.FindWalletByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, committed.Balance.Equal(decimal.NewFromInt(150)))

	assert.NoError(t, s.Rollback(ctx, tx), "rollback after commit is a no-op")
	assert.Error(t, tx.Commit(ctx), "second commit fails")
}

func TestRollbackDiscardsAndReleases(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedWallet(t, s, "u1", "100")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	w, err := s.FindWalletForUpdate(ctx, tx, "u1")
	require.NoError(t, err)
	w.Balance = decimal.Zero
	require.NoError(t, s.UpdateWalletInTx(ctx, tx, *w))
	require.NoError(t, s.Rollback(ctx, tx))

	committed, err := s.FindWalletByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, committed.Balance.Equal(decimal.NewFromInt(100)))

	// lock was released
	tx2, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = s.FindWalletForUpdate(ctx, tx2, "u1")
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(ctx))
}

func TestRowLockBlocksSecondTransaction(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedWallet(t, s, "u1", "100")

	tx1, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = s.FindWalletForUpdate(ctx, tx1, "u1")
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	tx2, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = s.FindWalletForUpdate(waitCtx, tx2, "u1")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "second locker waits until ctx expires, got %v", err)

	acquired := make(chan error, 1)
	go func() {
		_, err := s.FindWalletForUpdate(ctx, tx2, "u1")
		acquired <- err
	}()
	require.NoError(t, tx1.Rollback(ctx))
	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("lock not released by rollback")
	}
	require.NoError(t, tx2.Rollback(ctx))
}

func TestUpdateWithoutLockIsRejected(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedWallet(t, s, "u1", "100")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	err = s.UpdateWalletInTx(ctx, tx, domain.WalletAccount{UserID: "u1"})
	assert.Error(t, err)
}

func TestLedgerReferenceIsUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ref := "req-1"

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.InsertEntryInTx(ctx, tx, domain.LedgerEntry{EntryID: "e1", UserID: "u1", ReferenceID: &ref}))
	err = s.InsertEntryInTx(ctx, tx, domain.LedgerEntry{EntryID: "e2", UserID: "u1", ReferenceID: &ref})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	require.NoError(t, tx.Commit(ctx))

	tx2, err := s.Begin(ctx)
	require.NoError(t, err)
	err = s.InsertEntryInTx(ctx, tx2, domain.LedgerEntry{EntryID: "e3", UserID: "u1", ReferenceID: &ref})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	require.NoError(t, tx2.Rollback(ctx))

	entries, err := s.FindEntriesByReferenceID(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListRequestsPagination(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		kind := domain.FundRequest
		if i%2 == 1 {
			kind = domain.WithdrawalRequest
		}
		require.NoError(t, s.SaveRequest(ctx, domain.MonetaryRequest{
			RequestID:   string(rune('a' + i)),
			UserID:      "u1",
			Kind:        kind,
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Status:      domain.StatusPending,
			AuditFields: domain.NewAuditFields("u1", base.Add(time.Duration(i)*time.Minute)),
		}))
	}
	require.NoError(t, s.SaveRequest(ctx, domain.MonetaryRequest{
		RequestID: "other", UserID: "u2", Kind: domain.FundRequest, Status: domain.StatusPending,
		AuditFields: domain.NewAuditFields("u2", base),
	}))

	page1, next, err := s.ListRequests(ctx, domain.RequestFilter{UserID: "u1"}, 2, nil)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "e", page1[0].RequestID, "newest first")
	assert.Equal(t, "d", page1[1].RequestID)
	require.NotNil(t, next)

	page2, next, err := s.ListRequests(ctx, domain.RequestFilter{UserID: "u1"}, 2, next)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "c", page2[0].RequestID)

	page3, next, err := s.ListRequests(ctx, domain.RequestFilter{UserID: "u1"}, 2, next)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "a", page3[0].RequestID)
	assert.Nil(t, next)

	withdrawals, _, err := s.ListRequests(ctx, domain.RequestFilter{Kind: domain.WithdrawalRequest}, 10, nil)
	require.NoError(t, err)
	assert.Len(t, withdrawals, 2)

	bad := "%%%"
	_, _, err = s.ListRequests(ctx, domain.RequestFilter{}, 10, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestIncomeReportFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 2, d, 12, 0, 0, 0, time.UTC) }

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	for i, e := range []domain.LedgerEntry{
		{EntryID: "1", UserID: "u1", EntryType: domain.EntryFundRequest, Amount: decimal.NewFromInt(500), CreatedAt: day(1)},
		{EntryID: "2", UserID: "u1", EntryType: domain.EntryWithdrawal, Amount: decimal.NewFromInt(-300), CreatedAt: day(2)},
		{EntryID: "3", UserID: "u2", EntryType: domain.EntryAdminCredit, Amount: decimal.NewFromInt(250), CreatedAt: day(3)},
		{EntryID: "4", UserID: "u1", EntryType: domain.EntryAdminCredit, Amount: decimal.NewFromInt(10), CreatedAt: day(5)},
	} {
		require.NoError(t, s.InsertEntryInTx(ctx, tx, e), "entry %d", i)
	}
	require.NoError(t, tx.Commit(ctx))

	start := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	filter := domain.IncomeReportFilter{StartDate: &start, EndDate: &end}

	entries, totals, err := s.GetIncomeReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, entries, 2, "end date is inclusive of the whole day")
	assert.Equal(t, "3", entries[0].EntryID)
	assert.Len(t, totals, 2)

	filter.EntryTypes = []domain.EntryType{domain.EntryAdminCredit}
	filter.StartDate, filter.EndDate = nil, nil
	_, totals, err = s.GetIncomeReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[0].Amount.Equal(decimal.NewFromInt(260)))

	filter.UserID = "u1"
	filter.Limit = 1
	entries, totals, err = s.GetIncomeReport(ctx, filter)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "4", entries[0].EntryID)
	require.Len(t, totals, 1, "totals ignore the row limit")
	assert.Equal(t, 1, totals[0].Count)
}

func TestIdempotencyResponses(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.FindResponse(ctx, "u1", "k1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.SaveResponse(ctx, domain.IdempotentResponse{Key: "k1", UserID: "u1", StatusCode: 201, Body: []byte(`{"a":1}`)}))
	got, err := s.FindResponse(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.Equal(t, 201, got.StatusCode)
	assert.JSONEq(t, `{"a":1}`, string(got.Body))

	_, err = s.FindResponse(ctx, "u2", "k1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "keys are scoped per user")
}
