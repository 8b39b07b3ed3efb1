package accounting

import (
	"testing"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToTotals(t *testing.T) {
	tests := []struct {
		name            string
		entryType       domain.EntryType
		amount          string
		wantEarnings    string
		wantWithdrawals string
		wantErr         bool
	}{
		{"admin credit counts as earnings", domain.EntryAdminCredit, "250.00", "250", "0", false},
		{"admin debit counts as withdrawal", domain.EntryAdminDebit, "-40.00", "0", "40", false},
		{"approved withdrawal", domain.EntryWithdrawal, "-300.00", "0", "300", false},
		{"fund request is a top-up", domain.EntryFundRequest, "100.00", "0", "0", false},
		{"unknown type", domain.EntryType("BONUS"), "1", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewWalletAccount("u1", domain.AuditFields{})
			err := ApplyToTotals(&w, tt.entryType, decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, w.TotalEarnings.Equal(decimal.RequireFromString(tt.wantEarnings)), "earnings %s", w.TotalEarnings)
			assert.True(t, w.TotalWithdrawals.Equal(decimal.RequireFromString(tt.wantWithdrawals)), "withdrawals %s", w.TotalWithdrawals)
		})
	}
}

func TestAdjustmentEntryType(t *testing.T) {
	assert.Equal(t, domain.EntryAdminCredit, AdjustmentEntryType(decimal.NewFromInt(5)))
	assert.Equal(t, domain.EntryAdminDebit, AdjustmentEntryType(decimal.NewFromInt(-5)))
}

func TestSummarizeEntries(t *testing.T) {
	entries := []domain.LedgerEntry{
		{EntryType: domain.EntryWithdrawal, Amount: decimal.RequireFromString("-300.00")},
		{EntryType: domain.EntryFundRequest, Amount: decimal.RequireFromString("500.00")},
		{EntryType: domain.EntryWithdrawal, Amount: decimal.RequireFromString("-50.00")},
		{EntryType: domain.EntryAdminCredit, Amount: decimal.RequireFromString("25.50")},
	}

	totals, grand := SummarizeEntries(entries)
	require.Len(t, totals, 3)

	assert.Equal(t, domain.EntryFundRequest, totals[0].EntryType)
	assert.Equal(t, 1, totals[0].Count)
	assert.Equal(t, domain.EntryWithdrawal, totals[1].EntryType)
	assert.Equal(t, 2, totals[1].Count)
	assert.True(t, totals[1].Amount.Equal(decimal.RequireFromString("-350")))
	assert.Equal(t, domain.EntryAdminCredit, totals[2].EntryType)

	assert.True(t, grand.Equal(decimal.RequireFromString("175.50")), "grand %s", grand)
	assert.True(t, GrandTotal(totals).Equal(grand))

	empty, zero := SummarizeEntries(nil)
	assert.Empty(t, empty)
	assert.True(t, zero.IsZero())
}
