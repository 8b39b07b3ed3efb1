package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	maxIdempotencyKeyLength   = 255
)

// Idempotency replays the stored response for a repeated Idempotency-Key. Keys are scoped
// per user, so it must run after AuthMiddleware.
type Idempotency struct {
	repo portsrepo.IdempotencyRepository
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewIdempotency creates the middleware. Stored responses older than ttl are ignored.
func NewIdempotency(repo portsrepo.IdempotencyRepository, ttl time.Duration) *Idempotency {
	return &Idempotency{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// responseRecorder tees the response body so it can be stored after the handler ran.
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Handler returns the gin middleware.
func (i *Idempotency) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is too long"})
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		stored, err := i.repo.FindResponse(ctx, userID, key)
		switch {
		case err == nil && i.now().Sub(stored.CreatedAt) < i.ttl:
			if stored.Method != c.Request.Method || stored.Path != c.FullPath() {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Idempotency-Key was already used for a different request"})
				return
			}
			logger.Info("Replaying stored response", slog.String("idempotency_key", key))
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(stored.StatusCode, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			logger.Error("Failed to look up idempotency key", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		slot := userID + "|" + key
		if !i.acquire(slot) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this Idempotency-Key is already in progress"})
			return
		}
		defer i.release(slot)

		recorder := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		resp := domain.IdempotentResponse{
			Key:        key,
			UserID:     userID,
			Method:     c.Request.Method,
			Path:       c.FullPath(),
			StatusCode: status,
			Body:       recorder.body.Bytes(),
			CreatedAt:  i.now().UTC(),
		}
		if err := i.repo.SaveResponse(ctx, resp); err != nil {
			logger.Error("Failed to save idempotent response", slog.String("idempotency_key", key), slog.String("error", err.Error()))
		}
	}
}

func (i *Idempotency) acquire(slot string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, busy := i.inFlight[slot]; busy {
		return false
	}
	i.inFlight[slot] = struct{}{}
	return true
}

func (i *Idempotency) release(slot string) {
	i.mu.Lock()
	delete(i.inFlight, slot)
	i.mu.Unlock()
}
