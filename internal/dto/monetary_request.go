package dto

import (
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitFundRequest is the body of POST /fund-requests.
type SubmitFundRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_gt0,money" swaggertype:"string" example:"250.00"`
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,max=64"`
	TransactionID string          `json:"transactionId" binding:"omitempty,max=128"`
	ReceiptURL    string          `json:"receiptUrl" binding:"omitempty,url,max=512"`
}

// SubmitWithdrawalRequest is the body of POST /withdrawal-requests.
type SubmitWithdrawalRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required,decimal_gt0,money" swaggertype:"string" example:"100.00"`
	Remarks string          `json:"remarks" binding:"omitempty,max=500"`
}

// ApproveRequest optionally overrides the amount credited or debited on approval.
type ApproveRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gt0,money" swaggertype:"string"`
}

// RejectRequest carries the admin's reason.
type RejectRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=1000"`
}

// AnnotateRequest replaces the admin notes on a request in any status.
type AnnotateRequest struct {
	Notes string `json:"notes" binding:"required,max=1000"`
}

// SendFundOption selects the direction of a direct adjustment.
type SendFundOption string

const (
	SendFundCredit SendFundOption = "Credit"
	SendFundDebit  SendFundOption = "Debit"
)

// SendFundRequest is the body of POST /admin/send-fund.
type SendFundRequest struct {
	UserID  string          `json:"userId" binding:"required"`
	Option  SendFundOption  `json:"option" binding:"required,oneof=Credit Debit"`
	Amount  decimal.Decimal `json:"amount" binding:"required,decimal_gt0,money" swaggertype:"string" example:"250.00"`
	Remarks string          `json:"remarks" binding:"omitempty,max=500"`
}

// SignedAmount returns Amount negated for debits.
func (r SendFundRequest) SignedAmount() decimal.Decimal {
	if r.Option == SendFundDebit {
		return r.Amount.Neg()
	}
	return r.Amount
}

// WithdrawPersonallyRequest is the body of POST /admin/withdraw-personally.
type WithdrawPersonallyRequest struct {
	UserID         string          `json:"userId" binding:"required"`
	WithdrawalType string          `json:"withdrawalType" binding:"required,max=64"`
	Amount         decimal.Decimal `json:"amount" binding:"required,decimal_gt0,money" swaggertype:"string" example:"100.00"`
	Remarks        string          `json:"remarks" binding:"omitempty,max=500"`
}

// ListRequestsParams defines query parameters for listing requests.
type ListRequestsParams struct {
	Kind      string  `form:"kind" binding:"omitempty,oneof=FUND_REQUEST WITHDRAWAL_REQUEST"`
	Status    string  `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	UserID    string  `form:"userId"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// RequestResponse is the API shape of a monetary request.
type RequestResponse struct {
	RequestID      string           `json:"requestID"`
	UserID         string           `json:"userID"`
	Kind           string           `json:"kind"`
	Amount         decimal.Decimal  `json:"amount" swaggertype:"string"`
	ApprovedAmount *decimal.Decimal `json:"approvedAmount,omitempty" swaggertype:"string"`
	Status         string           `json:"status"`
	PaymentMethod  string           `json:"paymentMethod,omitempty"`
	TransactionID  string           `json:"transactionId,omitempty"`
	ReceiptURL     string           `json:"receiptUrl,omitempty"`
	WithdrawalType string           `json:"withdrawalType,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
	AdminNotes     string           `json:"adminNotes,omitempty"`
	ProcessedBy    *string          `json:"processedBy,omitempty"`
	ProcessedAt    *time.Time       `json:"processedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// ListRequestsResponse wraps a page of requests.
type ListRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToRequestResponse converts a domain.MonetaryRequest to RequestResponse DTO.
func ToRequestResponse(r *domain.MonetaryRequest) RequestResponse {
	return RequestResponse{
		RequestID:      r.RequestID,
		UserID:         r.UserID,
		Kind:           string(r.Kind),
		Amount:         r.Amount,
		ApprovedAmount: r.ApprovedAmount,
		Status:         string(r.Status),
		PaymentMethod:  r.Payment.PaymentMethod,
		TransactionID:  r.Payment.ExternalTransactionID,
		ReceiptURL:     r.Payment.ReceiptURL,
		WithdrawalType: r.WithdrawalType,
		Remarks:        r.Remarks,
		AdminNotes:     r.AdminNotes,
		ProcessedBy:    r.ProcessedBy,
		ProcessedAt:    r.ProcessedAt,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
	}
}

// ToListRequestsResponse converts a page of requests.
func ToListRequestsResponse(requests []domain.MonetaryRequest, nextToken *string) ListRequestsResponse {
	resp := make([]RequestResponse, len(requests))
	for i := range requests {
		resp[i] = ToRequestResponse(&requests[i])
	}
	return ListRequestsResponse{Requests: resp, NextToken: nextToken}
}
