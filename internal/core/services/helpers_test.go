package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/core/services"
	"github.com/SscSPs/mlm_backoffice/internal/repositories/memory"
)

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(t domain.EventType) interface{} {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == t })
}

// stepClock hands out strictly increasing times so listings have a stable order.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// fixture wires real services over the in-memory store.
type fixture struct {
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	publisher *MockEventPublisher
	clock     *stepClock
	users     portssvc.UserSvcFacade
	engine    portssvc.AdjudicationSvcFacade
	wallets   portssvc.WalletSvcFacade
	recruits  portssvc.RecruitSvcFacade
	reports   portssvc.ReportingService
	adminID   string
	memberID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Provider()
	return newFixtureWithRepos(t, store, repos)
}

func newFixtureWithRepos(t *testing.T, store *memory.Store, repos portsrepo.RepositoryProvider) *fixture {
	t.Helper()
	f := &fixture{
		store:     store,
		repos:     repos,
		publisher: new(MockEventPublisher),
		clock:     newStepClock(),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	f.users = services.NewUserService(repos.TxManager, repos.UserRepo, repos.WalletRepo, services.WithClock(f.clock.Now))
	opts := []services.BaseOption{
		services.WithAdminAuthorizer(f.users),
		services.WithEventPublisher(f.publisher),
		services.WithClock(f.clock.Now),
	}
	f.engine = services.NewAdjudicationService(repos.TxManager, repos.RequestRepo, repos.WalletRepo, repos.LedgerRepo, opts...)
	f.wallets = services.NewWalletService(repos.WalletRepo, repos.LedgerRepo, opts...)
	f.recruits = services.NewRecruitService(repos.TxManager, repos.RecruitRepo, repos.UserRepo, repos.WalletRepo, opts...)
	f.reports = services.NewReportingService(repos.ReportingRepo, opts...)

	ctx := context.Background()
	f.adminID = "admin-1"
	f.memberID = "member-1"
	_, err := f.users.EnsureUser(ctx, f.adminID, "Admin", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = f.users.EnsureUser(ctx, f.memberID, "Member", domain.RoleMember)
	require.NoError(t, err)
	return f
}

func (f *fixture) addMember(t *testing.T, id string) {
	t.Helper()
	_, err := f.users.EnsureUser(context.Background(), id, "Member "+id, domain.RoleMember)
	require.NoError(t, err)
}

// fund credits userID directly; it leaves an ADMIN_CREDIT entry behind.
func (f *fixture) fund(t *testing.T, userID string, amount string) {
	t.Helper()
	_, _, err := f.engine.DirectAdjust(context.Background(), f.adminID, userID, dec(amount), "seed")
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	w, err := f.store.FindWalletByUserID(context.Background(), userID)
	require.NoError(t, err)
	return w.Balance
}

// seedPending stores a pending request without the submission-time balance check.
func (f *fixture) seedPending(t *testing.T, userID string, kind domain.RequestKind, amount string) *domain.MonetaryRequest {
	t.Helper()
	r := domain.MonetaryRequest{
		RequestID:   "seed-" + userID + "-" + amount + "-" + string(kind),
		UserID:      userID,
		Kind:        kind,
		Amount:      dec(amount),
		Status:      domain.StatusPending,
		AuditFields: domain.NewAuditFields(userID, f.clock.Now()),
	}
	require.NoError(t, f.store.SaveRequest(context.Background(), r))
	return &r
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// commitFailingTxManager makes every commit fail after discarding the staged writes.
type commitFailingTxManager struct {
	portsrepo.TransactionManager
}

var errCommit = errors.New("commit failed")

func (m commitFailingTxManager) Commit(ctx context.Context, tx portsrepo.Tx) error {
	_ = tx.Rollback(ctx)
	return errCommit
}
