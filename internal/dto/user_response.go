package dto

import (
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
)

type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
