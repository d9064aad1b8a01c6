package dto

import (
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
)

// ListActivitiesParams defines query parameters for listing audit entries.
type ListActivitiesParams struct {
	Action string `form:"action"`
	UserID string `form:"userID"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}

// ActivityResponse defines the data returned for one audit entry.
type ActivityResponse struct {
	ActivityID string                `json:"activityID"`
	UserID     string                `json:"userID"`
	UserName   string                `json:"userName,omitempty"`
	Action     domain.ActivityAction `json:"action"`
	TargetType domain.TargetType     `json:"targetType,omitempty"`
	TargetID   string                `json:"targetID,omitempty"`
	TargetName string                `json:"targetName,omitempty"`
	Details    map[string]any        `json:"details,omitempty"`
	IPAddress  string                `json:"ipAddress,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ToActivityResponse converts a domain.ActivityLog to ActivityResponse DTO
func ToActivityResponse(e *domain.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ActivityID: e.ActivityID,
		UserID:     e.UserID,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		TargetName: e.TargetName,
		Details:    e.Details,
		IPAddress:  e.IPAddress,
		CreatedAt:  e.CreatedAt,
	}
}

// ListActivitiesResponse wraps the audit page with pagination metadata.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}
