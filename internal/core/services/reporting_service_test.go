package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/core/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

// MockReportingRepository is a mock implementation of ReportingRepository
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetIncomeReport(ctx context.Context, filter domain.IncomeReportFilter) ([]domain.LedgerEntry, []domain.IncomeTotal, error) {
	args := m.Called(ctx, filter)
	var totals []domain.IncomeTotal
	if t := args.Get(1); t != nil {
		totals = t.([]domain.IncomeTotal)
	}
	if args.Get(0) == nil {
		return nil, totals, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), totals, args.Error(2)
}

// seedActivity leaves one entry of every type on the member's ledger.
func seedActivity(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	f.fund(t, f.memberID, "100")
	fund, err := f.engine.SubmitFundRequest(ctx, f.memberID, dto.SubmitFundRequest{Amount: dec("50")})
	require.NoError(t, err)
	_, err = f.engine.Approve(ctx, fund.RequestID, f.adminID, nil)
	require.NoError(t, err)
	wd, err := f.engine.SubmitWithdrawalRequest(ctx, f.memberID, dto.SubmitWithdrawalRequest{Amount: dec("30")})
	require.NoError(t, err)
	_, err = f.engine.Approve(ctx, wd.RequestID, f.adminID, nil)
	require.NoError(t, err)
	_, _, err = f.engine.DirectAdjust(ctx, f.adminID, f.memberID, dec("-20"), "correction")
	require.NoError(t, err)
}

func TestReportingService_TotalsByType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedActivity(t, f)

	report, err := f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{})
	require.NoError(t, err)
	assert.Len(t, report.Entries, 4)
	require.Len(t, report.Totals, 4)
	assert.Equal(t, domain.EntryFundRequest, report.Totals[0].EntryType)
	assert.True(t, report.Totals[0].Amount.Equal(dec("50")))
	assert.True(t, report.Totals[1].Amount.Equal(dec("-30")))
	assert.True(t, report.Totals[2].Amount.Equal(dec("100")))
	assert.True(t, report.Totals[3].Amount.Equal(dec("-20")))
	assert.True(t, report.GrandTotal.Equal(dec("100")))
	assert.True(t, report.GrandTotal.Equal(f.balance(t, f.memberID)))

	credits, err := f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{
		EntryTypes: []domain.EntryType{domain.EntryAdminCredit, domain.EntryFundRequest},
		UserID:     f.memberID,
		Limit:      1,
	})
	require.NoError(t, err)
	assert.Len(t, credits.Entries, 1, "rows are truncated by limit")
	assert.Len(t, credits.Totals, 2, "totals are not")
	assert.True(t, credits.GrandTotal.Equal(dec("150")))
}

func TestReportingService_DateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedActivity(t, f)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report, err := f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{StartDate: &day, EndDate: &day})
	require.NoError(t, err)
	assert.Len(t, report.Entries, 4, "end date covers the whole day")

	next := day.AddDate(0, 0, 1)
	report, err = f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{StartDate: &next})
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Empty(t, report.Totals)
	assert.True(t, report.GrandTotal.IsZero())

	_, err = f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{StartDate: &next, EndDate: &day})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReportingService_Scoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedActivity(t, f)
	f.addMember(t, "member-2")

	own, err := f.reports.GetIncomeReport(ctx, "member-2", domain.IncomeReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, own.Entries, "members default to their own entries")

	_, err = f.reports.GetIncomeReport(ctx, "member-2", domain.IncomeReportFilter{UserID: f.memberID})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.reports.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{EntryTypes: []domain.EntryType{"BINARY_INCOME"}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReportingService_LimitsAndRepoErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, services.WithAdminAuthorizer(f.users))

	repo.On("GetIncomeReport", mock.Anything, mock.MatchedBy(func(fl domain.IncomeReportFilter) bool { return fl.Limit == 5000 })).
		Return([]domain.LedgerEntry{}, []domain.IncomeTotal{{EntryType: domain.EntryAdminCredit, Count: 2, Amount: dec("7")}}, nil).Once()
	report, err := svc.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{Limit: 100000})
	require.NoError(t, err)
	assert.True(t, report.GrandTotal.Equal(dec("7")))

	boom := errors.New("db down")
	repo.On("GetIncomeReport", mock.Anything, mock.Anything).Return(nil, nil, boom).Once()
	_, err = svc.GetIncomeReport(ctx, f.adminID, domain.IncomeReportFilter{})
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestReportingService_TotalsAgreeWithRowsUnderConcurrentWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	filter := domain.IncomeReportFilter{UserID: f.memberID, Limit: 5000}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			if _, _, err := f.engine.DirectAdjust(gctx, f.adminID, f.memberID, dec("1.25"), ""); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			report, err := f.reports.GetIncomeReport(gctx, f.adminID, filter)
			if err != nil {
				return err
			}
			rowSum := decimal.Zero
			for _, e := range report.Entries {
				rowSum = rowSum.Add(e.Amount)
			}
			if !rowSum.Equal(report.GrandTotal) {
				return fmt.Errorf("rows sum to %s but grand total is %s", rowSum, report.GrandTotal)
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	report, err := f.reports.GetIncomeReport(ctx, f.adminID, filter)
	require.NoError(t, err)
	assert.Len(t, report.Entries, 200)
	assert.True(t, report.GrandTotal.Equal(dec("250")))
}
