package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	userID string
	event  string
	props  map[string]any
	ok     bool
}

func newAnalyticsRouter(captured *capturedEvent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(func(c *gin.Context) {
		c.Next()
		captured.userID, captured.event, captured.props, captured.ok = analyticsEvent(c)
	})
	r.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), user))
		}
		c.Next()
	})

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.POST("/api/v1/admin/requests/:id/approve", ok)
	r.POST("/api/v1/fund-requests", func(c *gin.Context) {
		c.Header(IdempotencyReplayedHeader, "true")
		c.Status(http.StatusCreated)
	})
	r.GET("/api/v1/wallet", ok)
	r.GET("/api/v1/events", ok)
	r.POST("/api/v1/withdrawal-requests", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
	return r
}

func serveAs(r http.Handler, method, path, user string) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Request-ID", "req-42")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAnalyticsEvent_NamesAdjudicationActions(t *testing.T) {
	var got capturedEvent
	r := newAnalyticsRouter(&got)

	serveAs(r, http.MethodPost, "/api/v1/admin/requests/r-7/approve", "admin-1")

	require.True(t, got.ok)
	assert.Equal(t, "admin-1", got.userID)
	assert.Equal(t, "request_approved", got.event)
	assert.Equal(t, "/api/v1/admin/requests/:id/approve", got.props["route"])
	assert.Equal(t, true, got.props["admin_route"])
	assert.Equal(t, "r-7", got.props["resource_id"])
	assert.Equal(t, "req-42", got.props["request_id"])
	assert.Equal(t, http.StatusOK, got.props["status_code"])
}

func TestAnalyticsEvent_MarksIdempotentReplays(t *testing.T) {
	var got capturedEvent
	r := newAnalyticsRouter(&got)

	serveAs(r, http.MethodPost, "/api/v1/fund-requests", "member-1")

	require.True(t, got.ok)
	assert.Equal(t, "fund_request_submitted", got.event)
	assert.Equal(t, false, got.props["admin_route"])
	assert.Equal(t, true, got.props["idempotent_replay"])
}

func TestAnalyticsEvent_ReadsAreGeneric(t *testing.T) {
	var got capturedEvent
	r := newAnalyticsRouter(&got)

	serveAs(r, http.MethodGet, "/api/v1/wallet", "member-1")

	require.True(t, got.ok)
	assert.Equal(t, apiRequestEvent, got.event)
	assert.NotContains(t, got.props, "resource_id")
}

func TestAnalyticsEvent_Skipped(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		user   string
	}{
		{name: "anonymous", method: http.MethodGet, path: "/api/v1/wallet"},
		{name: "event stream", method: http.MethodGet, path: "/api/v1/events", user: "member-1"},
		{name: "failed request", method: http.MethodPost, path: "/api/v1/withdrawal-requests", user: "member-1"},
		{name: "unknown route", method: http.MethodGet, path: "/nope", user: "member-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capturedEvent{ok: true}
			r := newAnalyticsRouter(&got)
			serveAs(r, tt.method, tt.path, tt.user)
			assert.False(t, got.ok)
		})
	}
}
