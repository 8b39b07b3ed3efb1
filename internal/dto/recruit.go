package dto

import (
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterRecruitRequest is the body of POST /recruits.
type RegisterRecruitRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"required,email"`
}

// ApproveRecruitRequest places the recruit in the sponsor's tree.
type ApproveRecruitRequest struct {
	PackageAmount decimal.Decimal `json:"packageAmount" binding:"required,decimal_gt0,money" swaggertype:"string" example:"1000.00"`
	Position      string          `json:"position" binding:"required,oneof=LEFT RIGHT"`
}

// ListRecruitsParams defines query parameters for listing recruits.
type ListRecruitsParams struct {
	Status string `form:"status,default=PENDING" binding:"omitempty,oneof=PENDING APPROVED REJECTED ALL"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// RecruitResponse is the API shape of a pending recruit.
type RecruitResponse struct {
	RecruitID     string           `json:"recruitID"`
	SponsorID     string           `json:"sponsorID"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Status        string           `json:"status"`
	PackageAmount *decimal.Decimal `json:"packageAmount,omitempty" swaggertype:"string"`
	Position      string           `json:"position,omitempty"`
	UserID        *string          `json:"userID,omitempty"`
	AdminNotes    string           `json:"adminNotes,omitempty"`
	ProcessedBy   *string          `json:"processedBy,omitempty"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ListRecruitsResponse wraps a page of recruits.
type ListRecruitsResponse struct {
	Recruits []RecruitResponse `json:"recruits"`
}

// ToRecruitResponse converts a domain.PendingRecruit to RecruitResponse DTO.
func ToRecruitResponse(r *domain.PendingRecruit) RecruitResponse {
	return RecruitResponse{
		RecruitID:     r.RecruitID,
		SponsorID:     r.SponsorID,
		Name:          r.Name,
		Email:         r.Email,
		Status:        string(r.Status),
		PackageAmount: r.PackageAmount,
		Position:      string(r.Position),
		UserID:        r.UserID,
		AdminNotes:    r.AdminNotes,
		ProcessedBy:   r.ProcessedBy,
		ProcessedAt:   r.ProcessedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// ToListRecruitsResponse converts a slice of recruits.
func ToListRecruitsResponse(recruits []domain.PendingRecruit) ListRecruitsResponse {
	resp := make([]RecruitResponse, len(recruits))
	for i := range recruits {
		resp[i] = ToRecruitResponse(&recruits[i])
	}
	return ListRecruitsResponse{Recruits: resp}
}
