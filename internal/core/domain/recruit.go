package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BinaryPosition is the leg of the sponsor's tree a recruit is placed on.
type BinaryPosition string

const (
	PositionLeft  BinaryPosition = "LEFT"
	PositionRight BinaryPosition = "RIGHT"
)

// IsValid reports whether p is LEFT or RIGHT.
func (p BinaryPosition) IsValid() bool {
	return p == PositionLeft || p == PositionRight
}

// PendingRecruit is a downline registration awaiting admin approval. It follows the same
// pending -> resolved lifecycle as MonetaryRequest but carries no ledger effect.
type PendingRecruit struct {
	RecruitID     string           `json:"recruitID"`
	SponsorID     string           `json:"sponsorID"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Status        RequestStatus    `json:"status"`
	PackageAmount *decimal.Decimal `json:"packageAmount,omitempty"`
	Position      BinaryPosition   `json:"position,omitempty"`
	UserID        *string          `json:"userID,omitempty"` // member account created on approval
	AdminNotes    string           `json:"adminNotes,omitempty"`
	ProcessedBy   *string          `json:"processedBy,omitempty"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	AuditFields
}

// Resolve moves the recruit out of PENDING. It returns false when the transition is illegal.
func (r *PendingRecruit) Resolve(next RequestStatus, adminID string, now time.Time) bool {
	if !r.Status.CanTransitionTo(next) {
		return false
	}
	r.Status = next
	r.ProcessedBy = &adminID
	r.ProcessedAt = &now
	r.Touch(adminID, now)
	return true
}
