package events

import (
	"context"
	"errors"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
)

// MultiPublisher delivers every event to each publisher in order. A failing publisher does
// not prevent delivery to the rest; their errors are joined.
type MultiPublisher struct {
	publishers []portssvc.EventPublisher
}

// NewMultiPublisher skips nil publishers.
func NewMultiPublisher(publishers ...portssvc.EventPublisher) *MultiPublisher {
	m := &MultiPublisher{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

var _ portssvc.EventPublisher = (*MultiPublisher)(nil)

func (m *MultiPublisher) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
