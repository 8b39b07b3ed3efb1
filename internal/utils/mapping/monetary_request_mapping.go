package mapping

import (
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/models"
)

// ToModelMonetaryRequest converts a domain MonetaryRequest to a model MonetaryRequest
func ToModelMonetaryRequest(d domain.MonetaryRequest) models.MonetaryRequest {
	return models.MonetaryRequest{
		RequestID:             d.RequestID,
		UserID:                d.UserID,
		Kind:                  string(d.Kind),
		Amount:                d.Amount,
		ApprovedAmount:        toNullDecimal(d.ApprovedAmount),
		Status:                string(d.Status),
		PaymentMethod:         d.Payment.PaymentMethod,
		ExternalTransactionID: d.Payment.ExternalTransactionID,
		ReceiptURL:            d.Payment.ReceiptURL,
		WithdrawalType:        d.WithdrawalType,
		Remarks:               d.Remarks,
		AdminNotes:            d.AdminNotes,
		ProcessedBy:           d.ProcessedBy,
		ProcessedAt:           d.ProcessedAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMonetaryRequest converts a model MonetaryRequest to a domain MonetaryRequest
func ToDomainMonetaryRequest(m models.MonetaryRequest) domain.MonetaryRequest {
	return domain.MonetaryRequest{
		RequestID:      m.RequestID,
		UserID:         m.UserID,
		Kind:           domain.RequestKind(m.Kind),
		Amount:         m.Amount,
		ApprovedAmount: fromNullDecimal(m.ApprovedAmount),
		Status:         domain.RequestStatus(m.Status),
		Payment: domain.PaymentDetails{
			PaymentMethod:         m.PaymentMethod,
			ExternalTransactionID: m.ExternalTransactionID,
			ReceiptURL:            m.ReceiptURL,
		},
		WithdrawalType: m.WithdrawalType,
		Remarks:        m.Remarks,
		AdminNotes:     m.AdminNotes,
		ProcessedBy:    m.ProcessedBy,
		ProcessedAt:    m.ProcessedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMonetaryRequestSlice converts a slice of model requests to domain requests
func ToDomainMonetaryRequestSlice(ms []models.MonetaryRequest) []domain.MonetaryRequest {
	ds := make([]domain.MonetaryRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMonetaryRequest(m)
	}
	return ds
}
