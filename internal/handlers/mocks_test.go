package handlers_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

// --- Mock Adjudication Service ---
type MockAdjudicationService struct {
	mock.Mock
}

var _ portssvc.AdjudicationSvcFacade = (*MockAdjudicationService)(nil)

func (m *MockAdjudicationService) SubmitFundRequest(ctx context.Context, userID string, req dto.SubmitFundRequest) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) SubmitWithdrawalRequest(ctx context.Context, userID string, req dto.SubmitWithdrawalRequest) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) WithdrawOnBehalf(ctx context.Context, adminID string, req dto.WithdrawPersonallyRequest) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) Approve(ctx context.Context, requestID string, adminID string, overrideAmount *decimal.Decimal) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, requestID, adminID, overrideAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) Reject(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, requestID, adminID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) AnnotateRequest(ctx context.Context, requestID string, adminID string, notes string) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, requestID, adminID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) DirectAdjust(ctx context.Context, adminID string, userID string, signedAmount decimal.Decimal, remarks string) (*domain.WalletAccount, *domain.LedgerEntry, error) {
	args := m.Called(ctx, adminID, userID, signedAmount, remarks)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.WalletAccount), args.Get(1).(*domain.LedgerEntry), args.Error(2)
}

func (m *MockAdjudicationService) GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.MonetaryRequest, error) {
	args := m.Called(ctx, requestID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonetaryRequest), args.Error(1)
}

func (m *MockAdjudicationService) ListRequests(ctx context.Context, requestingUserID string, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error) {
	args := m.Called(ctx, requestingUserID, filter, limit, nextToken)
	var next *string
	if n := args.Get(1); n != nil {
		next = n.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.MonetaryRequest), next, args.Error(2)
}

// --- Mock Wallet Service ---
type MockWalletService struct {
	mock.Mock
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

func (m *MockWalletService) GetWallet(ctx context.Context, userID string, requestingUserID string) (*domain.WalletAccount, error) {
	args := m.Called(ctx, userID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletAccount), args.Error(1)
}

func (m *MockWalletService) ListLedger(ctx context.Context, userID string, requestingUserID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, requestingUserID, limit, nextToken)
	var next *string
	if n := args.Get(1); n != nil {
		next = n.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}

// --- Mock User Service ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) EnsureUser(ctx context.Context, userID string, name string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, userID, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthorizeAdmin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthorizeSelfOrAdmin(ctx context.Context, requestingUserID string, ownerUserID string) error {
	args := m.Called(ctx, requestingUserID, ownerUserID)
	return args.Error(0)
}

// --- Mock Recruit Service ---
type MockRecruitService struct {
	mock.Mock
}

var _ portssvc.RecruitSvcFacade = (*MockRecruitService)(nil)

func (m *MockRecruitService) RegisterRecruit(ctx context.Context, sponsorID string, req dto.RegisterRecruitRequest) (*domain.PendingRecruit, error) {
	args := m.Called(ctx, sponsorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRecruit), args.Error(1)
}

func (m *MockRecruitService) ListRecruits(ctx context.Context, adminID string, status domain.RequestStatus, limit, offset int) ([]domain.PendingRecruit, error) {
	args := m.Called(ctx, adminID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingRecruit), args.Error(1)
}

func (m *MockRecruitService) ApproveRecruit(ctx context.Context, recruitID string, adminID string, req dto.ApproveRecruitRequest) (*domain.PendingRecruit, error) {
	args := m.Called(ctx, recruitID, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRecruit), args.Error(1)
}

func (m *MockRecruitService) RejectRecruit(ctx context.Context, recruitID string, adminID string, notes string) (*domain.PendingRecruit, error) {
	args := m.Called(ctx, recruitID, adminID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRecruit), args.Error(1)
}

// --- Mock Reporting Service ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) GetIncomeReport(ctx context.Context, requestingUserID string, filter domain.IncomeReportFilter) (*domain.IncomeReport, error) {
	args := m.Called(ctx, requestingUserID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeReport), args.Error(1)
}
