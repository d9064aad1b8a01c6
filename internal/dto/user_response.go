package dto

import (
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateChangeResponse is one entry of a user's commission rate history.
type RateChangeResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy string          `json:"changedBy"`
}

type UserResponse struct {
	UserID            string               `json:"userID"`
	Username          string               `json:"username"`
	Name              string               `json:"name"`
	Role              domain.UserRole      `json:"role"`
	CommissionRate    decimal.Decimal      `json:"commissionRate"`
	CommissionHistory []RateChangeResponse `json:"commissionHistory,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	history := make([]RateChangeResponse, len(user.CommissionHistory))
	for i, rc := range user.CommissionHistory {
		history[i] = RateChangeResponse{
			Rate:      rc.Rate,
			ChangedAt: rc.ChangedAt,
			ChangedBy: rc.ChangedBy,
		}
	}
	return UserResponse{
		UserID:            user.UserID,
		Username:          user.Username,
		Name:              user.Name,
		Role:              user.Role,
		CommissionRate:    user.CommissionRate,
		CommissionHistory: history,
		CreatedAt:         user.CreatedAt,
		LastUpdatedAt:     user.LastUpdatedAt,
	}
}

// UserImpactResponse reports what a user deletion would touch: the campaigns
// they own and the live order figures attributed to them.
type UserImpactResponse struct {
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	CampaignCount   int             `json:"campaignCount"`
	OrderCount      int             `json:"orderCount"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}
