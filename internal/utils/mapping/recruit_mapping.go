package mapping

import (
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/models"
)

// ToModelRecruit converts a domain PendingRecruit to a model PendingRecruit
func ToModelRecruit(d domain.PendingRecruit) models.PendingRecruit {
	return models.PendingRecruit{
		RecruitID:     d.RecruitID,
		SponsorID:     d.SponsorID,
		Name:          d.Name,
		Email:         d.Email,
		Status:        string(d.Status),
		PackageAmount: toNullDecimal(d.PackageAmount),
		Position:      string(d.Position),
		UserID:        d.UserID,
		AdminNotes:    d.AdminNotes,
		ProcessedBy:   d.ProcessedBy,
		ProcessedAt:   d.ProcessedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecruit converts a model PendingRecruit to a domain PendingRecruit
func ToDomainRecruit(m models.PendingRecruit) domain.PendingRecruit {
	return domain.PendingRecruit{
		RecruitID:     m.RecruitID,
		SponsorID:     m.SponsorID,
		Name:          m.Name,
		Email:         m.Email,
		Status:        domain.RequestStatus(m.Status),
		PackageAmount: fromNullDecimal(m.PackageAmount),
		Position:      domain.BinaryPosition(m.Position),
		UserID:        m.UserID,
		AdminNotes:    m.AdminNotes,
		ProcessedBy:   m.ProcessedBy,
		ProcessedAt:   m.ProcessedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecruitSlice converts a slice of model recruits to domain recruits
func ToDomainRecruitSlice(ms []models.PendingRecruit) []domain.PendingRecruit {
	ds := make([]domain.PendingRecruit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecruit(m)
	}
	return ds
}
