package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/core/services"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/SscSPs/mlm_backoffice/internal/events"
	"github.com/SscSPs/mlm_backoffice/internal/handlers"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/SscSPs/mlm_backoffice/internal/platform/config"
	"github.com/SscSPs/mlm_backoffice/internal/repositories/memory"
	"github.com/SscSPs/mlm_backoffice/internal/utils"
)

type flowClient struct {
	t      *testing.T
	router *gin.Engine
	cfg    *config.Config
}

func newFlowClient(t *testing.T) (*flowClient, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:         "flow-secret-key-that-is-long-enough",
		JWTIssuer:         "mlm-flow",
		JWTExpiryDuration: time.Hour,
		StorageDriver:     config.StorageMemory,
		IsProduction:      true,
	}

	repos := memory.NewStore().Provider()
	hub := events.NewHub()
	t.Cleanup(hub.Close)
	container := services.NewServiceContainer(repos, hub, hub)

	adminID := "admin-1"
	_, err := container.User.EnsureUser(context.Background(), adminID, "Root", domain.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, middleware.NewIdempotency(repos.IdempotencyRepo, time.Hour))
	return &flowClient{t: t, router: r, cfg: cfg}, adminID
}

func (f *flowClient) call(method, path, userID, body string, headers map[string]string) *httptest.ResponseRecorder {
	f.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := utils.GenerateJWT(userID, f.cfg.JWTSecret, time.Hour, f.cfg.JWTIssuer)
	require.NoError(f.t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestFundAndWithdrawalLifecycle(t *testing.T) {
	f, adminID := newFlowClient(t)

	created := f.call(http.MethodPost, "/api/v1/admin/users", adminID, `{"name":"Asha"}`, nil)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	memberID := decode[dto.UserResponse](t, created).UserID

	// Fund request, submitted twice with the same key
	key := map[string]string{middleware.IdempotencyKeyHeader: "fund-1"}
	first := f.call(http.MethodPost, "/api/v1/fund-requests", memberID, `{"amount":"500.00","paymentMethod":"UPI"}`, key)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	replay := f.call(http.MethodPost, "/api/v1/fund-requests", memberID, `{"amount":"500.00","paymentMethod":"UPI"}`, key)
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(middleware.IdempotencyReplayedHeader))
	fundReq := decode[dto.RequestResponse](t, first)
	assert.Equal(t, fundReq.RequestID, decode[dto.RequestResponse](t, replay).RequestID)

	list := decode[dto.ListRequestsResponse](t, f.call(http.MethodGet, "/api/v1/fund-requests", memberID, "", nil))
	require.Len(t, list.Requests, 1)

	// Members cannot adjudicate
	forbidden := f.call(http.MethodPost, "/api/v1/admin/requests/"+fundReq.RequestID+"/approve", memberID, "", nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	approved := f.call(http.MethodPost, "/api/v1/admin/requests/"+fundReq.RequestID+"/approve", adminID, "", nil)
	require.Equal(t, http.StatusOK, approved.Code, approved.Body.String())
	assert.Equal(t, string(domain.StatusApproved), decode[dto.RequestResponse](t, approved).Status)

	again := f.call(http.MethodPost, "/api/v1/admin/requests/"+fundReq.RequestID+"/approve", adminID, "", nil)
	assert.Equal(t, http.StatusConflict, again.Code)

	wallet := decode[dto.WalletResponse](t, f.call(http.MethodGet, "/api/v1/wallet", memberID, "", nil))
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(500)), wallet.Balance.String())

	// Withdrawal approved for less than requested
	wd := f.call(http.MethodPost, "/api/v1/withdrawal-requests", memberID, `{"amount":"300","remarks":"rent"}`, nil)
	require.Equal(t, http.StatusCreated, wd.Code, wd.Body.String())
	wdReq := decode[dto.RequestResponse](t, wd)

	approvedWd := f.call(http.MethodPost, "/api/v1/admin/requests/"+wdReq.RequestID+"/approve", adminID, `{"amount":"200"}`, nil)
	require.Equal(t, http.StatusOK, approvedWd.Code, approvedWd.Body.String())

	wallet = decode[dto.WalletResponse](t, f.call(http.MethodGet, fmt.Sprintf("/api/v1/admin/users/%s/wallet", memberID), adminID, "", nil))
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(300)), wallet.Balance.String())
	assert.True(t, wallet.TotalWithdrawals.Equal(decimal.NewFromInt(200)))

	ledger := decode[dto.ListLedgerResponse](t, f.call(http.MethodGet, "/api/v1/wallet/ledger", memberID, "", nil))
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, string(domain.EntryWithdrawal), ledger.Entries[0].EntryType)
	assert.True(t, ledger.Entries[0].BalanceBefore.Equal(decimal.NewFromInt(500)))
	assert.True(t, ledger.Entries[0].BalanceAfter.Equal(decimal.NewFromInt(300)))

	// Overdrawing debit is refused and leaves the wallet alone
	debit := fmt.Sprintf(`{"userId":%q,"option":"Debit","amount":"1000"}`, memberID)
	refused := f.call(http.MethodPost, "/api/v1/admin/send-fund", adminID, debit, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, refused.Code)

	report := decode[dto.IncomeReportResponse](t, f.call(http.MethodGet, "/api/v1/income-reports?transactionTypes=WITHDRAWAL", memberID, "", nil))
	require.Len(t, report.Rows, 1)
	assert.True(t, report.GrandTotal.Equal(decimal.NewFromInt(-200)), report.GrandTotal.String())
}

func TestMemberCannotReadAnotherWallet(t *testing.T) {
	f, adminID := newFlowClient(t)

	a := decode[dto.UserResponse](t, f.call(http.MethodPost, "/api/v1/admin/users", adminID, `{"name":"A"}`, nil))
	b := decode[dto.UserResponse](t, f.call(http.MethodPost, "/api/v1/admin/users", adminID, `{"name":"B"}`, nil))

	w := f.call(http.MethodGet, "/api/v1/admin/users/"+b.UserID+"/wallet", a.UserID, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSwaggerHiddenInProduction(t *testing.T) {
	f, adminID := newFlowClient(t)

	w := f.call(http.MethodGet, "/swagger/index.html", adminID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
