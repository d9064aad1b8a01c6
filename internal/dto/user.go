package dto

import (
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines the data needed to create a new user.
// CommissionRate is a percentage in [0,100]; admins must carry rate 0.
type CreateUserRequest struct {
	Username       string           `json:"username" binding:"required,min=3,max=50"`
	Password       string           `json:"password" binding:"required,min=8"`
	Name           string           `json:"name" binding:"required"`
	Role           domain.UserRole  `json:"role" binding:"required,oneof=admin sales_person"`
	CommissionRate *decimal.Decimal `json:"commissionRate" binding:"omitempty,gte=0,lte=100"` // Optional, defaults to 0
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Username       *string          `json:"username" binding:"omitempty,min=3,max=50"`
	Password       *string          `json:"password" binding:"omitempty,min=8"`
	Name           *string          `json:"name"`
	Role           *domain.UserRole `json:"role" binding:"omitempty,oneof=admin sales_person"`
	CommissionRate *decimal.Decimal `json:"commissionRate" binding:"omitempty,gte=0,lte=100"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=admin sales_person"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users with pagination metadata.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User, total, limit, offset int) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users:  userResponses,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
