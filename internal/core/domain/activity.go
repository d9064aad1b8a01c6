package domain

import "time"

// ActivityAction identifies what an audit entry records.
type ActivityAction string

const (
	ActionLogin            ActivityAction = "login"
	ActionLogout           ActivityAction = "logout"
	ActionCreateUser       ActivityAction = "CREATE_USER"
	ActionUpdateUser       ActivityAction = "UPDATE_USER"
	ActionDeleteUser       ActivityAction = "DELETE_USER"
	ActionCreateCampaign   ActivityAction = "CREATE_CAMPAIGN"
	ActionUpdateCampaign   ActivityAction = "UPDATE_CAMPAIGN"
	ActionDeleteCampaign   ActivityAction = "DELETE_CAMPAIGN"
	ActionCreateOrder      ActivityAction = "CREATE_ORDER"
	ActionUpdateOrder      ActivityAction = "UPDATE_ORDER"
	ActionDeleteOrder      ActivityAction = "DELETE_ORDER"
	ActionCommissionChange ActivityAction = "commission_change"
)

// TargetType identifies the entity kind an audit entry points at.
type TargetType string

const (
	TargetUser     TargetType = "User"
	TargetCampaign TargetType = "Campaign"
	TargetOrder    TargetType = "Order"
)

// ActivityLog is an immutable audit record. Entries are append-only and are
// never consumed by the commission engine.
type ActivityLog struct {
	ActivityID string         `json:"activityID"` // Primary Key (UUID)
	UserID     string         `json:"userID"`     // Acting user
	Action     ActivityAction `json:"action"`
	TargetType TargetType     `json:"targetType,omitempty"`
	TargetID   string         `json:"targetID,omitempty"`
	TargetName string         `json:"targetName,omitempty"` // Human-readable name of target
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
