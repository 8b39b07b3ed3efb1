package services

import (
	"context"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

// EventPublisher delivers committed state changes to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventStream lets in-process consumers follow published events.
type EventStream interface {
	// Subscribe returns a channel of events and a cancel func that closes it.
	Subscribe(ctx context.Context) (<-chan domain.Event, func())
}
