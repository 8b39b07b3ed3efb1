package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

const eventKeepAliveInterval = 25 * time.Second

// eventHandler streams committed changes to consoles so they know when to refetch.
type eventHandler struct {
	stream     portssvc.EventStream
	authorizer portssvc.AdminAuthorizerSvc
	keepAlive  time.Duration
}

func newEventHandler(stream portssvc.EventStream, authorizer portssvc.AdminAuthorizerSvc) *eventHandler {
	return &eventHandler{
		stream:     stream,
		authorizer: authorizer,
		keepAlive:  eventKeepAliveInterval,
	}
}

func registerEventRoutes(rg *gin.RouterGroup, stream portssvc.EventStream, authorizer portssvc.AdminAuthorizerSvc) {
	if stream == nil {
		return
	}
	h := newEventHandler(stream, authorizer)
	rg.GET("/events", h.streamEvents)
}

// streamEvents godoc
// @Summary Follow adjudication events
// @Description Server-sent events. Admins receive every event, members only those about their own wallet.
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "text/event-stream of domain events"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /events [get]
func (h *eventHandler) streamEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()
	seesAll := h.authorizer.AuthorizeAdmin(ctx, userID) == nil

	events, cancel := h.stream.Subscribe(ctx)
	defer cancel()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	logger.Info("Event stream opened", slog.Bool("all_users", seesAll))
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, open := <-events:
			if !open {
				return false
			}
			if seesAll || event.UserID == userID {
				c.SSEvent(string(event.Type), event)
			}
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
	logger.Info("Event stream closed")
}
