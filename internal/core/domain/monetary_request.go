package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestKind identifies whether a request adds funds to or removes funds from a wallet.
type RequestKind string

const (
	FundRequest       RequestKind = "FUND_REQUEST"
	WithdrawalRequest RequestKind = "WITHDRAWAL_REQUEST"
)

// IsValid reports whether k is a known kind.
func (k RequestKind) IsValid() bool {
	return k == FundRequest || k == WithdrawalRequest
}

// RequestStatus is the adjudication state of a MonetaryRequest.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// IsValid reports whether s is a known status.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo encodes the only legal edges: PENDING->APPROVED and PENDING->REJECTED.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// PaymentDetails is the optional metadata a user attaches to a fund request.
type PaymentDetails struct {
	PaymentMethod         string `json:"paymentMethod,omitempty"`
	ExternalTransactionID string `json:"transactionId,omitempty"`
	ReceiptURL            string `json:"receiptUrl,omitempty"`
}

// MonetaryRequest is a user-initiated ask to add or remove funds, subject to admin adjudication.
type MonetaryRequest struct {
	RequestID      string           `json:"requestID"`
	UserID         string           `json:"userID"`
	Kind           RequestKind      `json:"kind"`
	Amount         decimal.Decimal  `json:"amount"`
	ApprovedAmount *decimal.Decimal `json:"approvedAmount,omitempty"`
	Status         RequestStatus    `json:"status"`
	Payment        PaymentDetails   `json:"payment"`
	WithdrawalType string           `json:"withdrawalType,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
	AdminNotes     string           `json:"adminNotes,omitempty"`
	ProcessedBy    *string          `json:"processedBy,omitempty"`
	ProcessedAt    *time.Time       `json:"processedAt,omitempty"`
	AuditFields
}

// SignedAmount returns the wallet delta for amount according to the request kind:
// positive for fund requests, negative for withdrawals.
func (r MonetaryRequest) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if r.Kind == WithdrawalRequest {
		return amount.Neg()
	}
	return amount
}

// EntryType maps the request kind to the ledger entry type recorded on approval.
func (r MonetaryRequest) EntryType() EntryType {
	if r.Kind == WithdrawalRequest {
		return EntryWithdrawal
	}
	return EntryFundRequest
}

// Resolve moves the request out of PENDING. It returns false when the transition is illegal.
func (r *MonetaryRequest) Resolve(next RequestStatus, adminID string, now time.Time) bool {
	if !r.Status.CanTransitionTo(next) {
		return false
	}
	r.Status = next
	r.ProcessedBy = &adminID
	r.ProcessedAt = &now
	r.Touch(adminID, now)
	return true
}

// RequestFilter narrows request listings. Empty fields match everything.
type RequestFilter struct {
	UserID string
	Kind   RequestKind
	Status RequestStatus
}
