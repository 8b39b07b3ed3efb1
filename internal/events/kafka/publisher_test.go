package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublishWritesKeyedMessage(t *testing.T) {
	w := new(MockWriter)
	p := &Publisher{writer: w}

	amount := decimal.RequireFromString("-300.00")
	event := domain.Event{
		Type:       domain.EventRequestApproved,
		UserID:     "u1",
		ActorID:    "admin",
		ResourceID: "r1",
		Amount:     &amount,
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "u1" {
			return false
		}
		var got domain.Event
		if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
			return false
		}
		return got.Type == domain.EventRequestApproved && got.Amount != nil && got.Amount.Equal(amount)
	})).Return(nil).Once()

	// a cancelled request context must not abort the write
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Publish(ctx, event))
	w.AssertExpectations(t)
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := new(MockWriter)
	p := &Publisher{writer: w}
	boom := errors.New("broker down")
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(boom)

	err := p.Publish(context.Background(), domain.Event{Type: domain.EventWalletAdjusted, UserID: "u1"})
	assert.ErrorIs(t, err, boom)
}
