package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/mlm_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	apiRequestEvent  = "api_request"
	adminRoutePrefix = "/api/v1/admin/"
)

// backOfficeEvents names the routes that change money or membership state.
// Keys are "METHOD full-path" as registered with gin.
var backOfficeEvents = map[string]string{
	"POST /api/v1/fund-requests":                      "fund_request_submitted",
	"POST /api/v1/withdrawal-requests":                "withdrawal_request_submitted",
	"POST /api/v1/recruits":                           "recruit_registered",
	"POST /api/v1/admin/requests/:id/approve":         "request_approved",
	"POST /api/v1/admin/requests/:id/reject":          "request_rejected",
	"PATCH /api/v1/admin/requests/:id/notes":          "request_annotated",
	"POST /api/v1/admin/send-fund":                    "wallet_adjusted",
	"POST /api/v1/admin/withdraw-personally":          "withdrawal_on_behalf",
	"POST /api/v1/admin/pending-recruits/:id/approve": "recruit_approved",
	"POST /api/v1/admin/pending-recruits/:id/reject":  "recruit_rejected",
	"POST /api/v1/admin/users":                        "user_created",
}

// untrackedRoutes are never sent.
var untrackedRoutes = map[string]bool{
	"/health":        true,
	"/swagger/*any":  true,
	"/api/v1/events": true,
}

// PosthogMiddleware reports successful authenticated calls to PostHog once the handler has run.
// Money and membership changes get their own event names; everything else is "api_request".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		userID, event, props, ok := analyticsEvent(c)
		if !ok {
			return
		}
		posthogClient.Enqueue(userID, event, props)
	}
}

// analyticsEvent builds the PostHog capture for a finished request. ok is false for
// failed, anonymous, unrouted or untracked requests.
func analyticsEvent(c *gin.Context) (userID, event string, props map[string]any, ok bool) {
	route := c.FullPath()
	if route == "" || untrackedRoutes[route] {
		return "", "", nil, false
	}
	if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
		return "", "", nil, false
	}
	userID, ok = GetUserIDFromContext(c)
	if !ok {
		return "", "", nil, false
	}

	event, named := backOfficeEvents[c.Request.Method+" "+route]
	if !named {
		event = apiRequestEvent
	}
	props = map[string]any{
		"method":      c.Request.Method,
		"route":       route,
		"status_code": c.Writer.Status(),
		"admin_route": strings.HasPrefix(route, adminRoutePrefix),
	}
	if requestID := GetRequestIDFromCtx(c.Request.Context()); requestID != "" {
		props["request_id"] = requestID
	}
	if id := c.Param("id"); id != "" {
		props["resource_id"] = id
	}
	// replays are served from the idempotency store, the action did not run again
	if c.Writer.Header().Get(IdempotencyReplayedHeader) == "true" {
		props["idempotent_replay"] = true
	}
	return userID, event, props, true
}
