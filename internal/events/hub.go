package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
)

const subscriberBuffer = 32

// Hub fans published events out to in-process subscribers such as SSE streams.
// A subscriber that falls behind loses events rather than blocking publishers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan domain.Event
	nextID uint64
	closed bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan domain.Event)}
}

var (
	_ portssvc.EventPublisher = (*Hub)(nil)
	_ portssvc.EventStream    = (*Hub)(nil)
)

// Publish never fails; slow subscribers miss the event.
func (h *Hub) Publish(ctx context.Context, event domain.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			middleware.GetLoggerFromCtx(ctx).Warn("Dropping event for slow subscriber",
				slog.Uint64("subscriber", id),
				slog.String("event_type", string(event.Type)))
		}
	}
	return nil
}

// Subscribe registers a subscriber. The channel is closed by cancel, by ctx ending, or by Close.
func (h *Hub) Subscribe(ctx context.Context) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if existing, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(existing)
			}
			h.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}

// Subscribers returns the current number of subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber channel. Later subscriptions receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.closed = true
}
