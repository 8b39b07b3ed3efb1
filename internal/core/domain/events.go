package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a state change consoles may want to refresh on.
type EventType string

const (
	EventRequestSubmitted EventType = "request.submitted"
	EventRequestApproved  EventType = "request.approved"
	EventRequestRejected  EventType = "request.rejected"
	EventRequestAnnotated EventType = "request.annotated"
	EventWalletAdjusted   EventType = "wallet.adjusted"
	EventRecruitApproved  EventType = "recruit.approved"
	EventRecruitRejected  EventType = "recruit.rejected"
)

// Event is published after a committed change.
type Event struct {
	Type       EventType        `json:"type"`
	UserID     string           `json:"userID"`
	ActorID    string           `json:"actorID"`
	ResourceID string           `json:"resourceID,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
