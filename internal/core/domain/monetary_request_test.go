package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.RequestStatus
		to   domain.RequestStatus
		want bool
	}{
		{name: "pending to approved", from: domain.StatusPending, to: domain.StatusApproved, want: true},
		{name: "pending to rejected", from: domain.StatusPending, to: domain.StatusRejected, want: true},
		{name: "pending to pending", from: domain.StatusPending, to: domain.StatusPending, want: false},
		{name: "approved to rejected", from: domain.StatusApproved, to: domain.StatusRejected, want: false},
		{name: "approved to pending", from: domain.StatusApproved, to: domain.StatusPending, want: false},
		{name: "rejected to approved", from: domain.StatusRejected, to: domain.StatusApproved, want: false},
		{name: "rejected to pending", from: domain.StatusRejected, to: domain.StatusPending, want: false},
		{name: "approved to approved", from: domain.StatusApproved, to: domain.StatusApproved, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestMonetaryRequest_Resolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	req := domain.MonetaryRequest{
		RequestID: "req_1",
		Kind:      domain.WithdrawalRequest,
		Amount:    decimal.RequireFromString("300.00"),
		Status:    domain.StatusPending,
	}

	require.True(t, req.Resolve(domain.StatusApproved, "admin_1", now))
	assert.Equal(t, domain.StatusApproved, req.Status)
	require.NotNil(t, req.ProcessedBy)
	assert.Equal(t, "admin_1", *req.ProcessedBy)
	require.NotNil(t, req.ProcessedAt)
	assert.Equal(t, now, *req.ProcessedAt)
	assert.Equal(t, "admin_1", req.LastUpdatedBy)

	later := now.Add(time.Hour)
	assert.False(t, req.Resolve(domain.StatusRejected, "admin_2", later))
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, "admin_1", *req.ProcessedBy)
	assert.Equal(t, now, *req.ProcessedAt)
}

func TestMonetaryRequest_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("125.50")

	fund := domain.MonetaryRequest{Kind: domain.FundRequest}
	assert.True(t, fund.SignedAmount(amount).Equal(amount))
	assert.Equal(t, domain.EntryFundRequest, fund.EntryType())

	withdrawal := domain.MonetaryRequest{Kind: domain.WithdrawalRequest}
	assert.True(t, withdrawal.SignedAmount(amount).Equal(amount.Neg()))
	assert.Equal(t, domain.EntryWithdrawal, withdrawal.EntryType())
}

func TestEntryType_IsValid(t *testing.T) {
	assert.True(t, domain.EntryAdminCredit.IsValid())
	assert.False(t, domain.EntryType("BINARY_INCOME").IsValid())
}
