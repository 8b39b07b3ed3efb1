package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingRecruit represents a row of the pending_recruits table.
type PendingRecruit struct {
	RecruitID     string              `db:"recruit_id"`
	SponsorID     string              `db:"sponsor_id"`
	Name          string              `db:"name"`
	Email         string              `db:"email"`
	Status        string              `db:"status"`
	PackageAmount decimal.NullDecimal `db:"package_amount"`
	Position      string              `db:"position"`
	UserID        *string             `db:"user_id"`
	AdminNotes    string              `db:"admin_notes"`
	ProcessedBy   *string             `db:"processed_by"`
	ProcessedAt   *time.Time          `db:"processed_at"`
	AuditFields
}
