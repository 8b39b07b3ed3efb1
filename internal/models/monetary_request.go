package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonetaryRequest represents a row of the monetary_requests table.
// Optional text columns are stored as empty strings rather than NULL.
type MonetaryRequest struct {
	RequestID             string              `db:"request_id"`
	UserID                string              `db:"user_id"`
	Kind                  string              `db:"kind"`
	Amount                decimal.Decimal     `db:"amount"`
	ApprovedAmount        decimal.NullDecimal `db:"approved_amount"`
	Status                string              `db:"status"`
	PaymentMethod         string              `db:"payment_method"`
	ExternalTransactionID string              `db:"external_transaction_id"`
	ReceiptURL            string              `db:"receipt_url"`
	WithdrawalType        string              `db:"withdrawal_type"`
	Remarks               string              `db:"remarks"`
	AdminNotes            string              `db:"admin_notes"`
	ProcessedBy           *string             `db:"processed_by"`
	ProcessedAt           *time.Time          `db:"processed_at"`
	AuditFields
}
