package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole distinguishes administrators from commissioned sales staff.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSalesPerson UserRole = "sales_person"
)

// RateChange is one entry in a sales person's commission history.
// The history is append-only: entries are never mutated or pruned.
type RateChange struct {
	Rate      decimal.Decimal `json:"rate"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy string          `json:"changedBy"` // UserID of the acting admin
}

// User represents an application account in the domain.
// Admins always carry a zero commission rate; only sales persons may hold a
// nonzero rate.
type User struct {
	UserID            string          `json:"userID"` // Primary Key (UUID)
	Username          string          `json:"username"`
	PasswordHash      string          `json:"-"`
	Name              string          `json:"name"`
	Role              UserRole        `json:"role"`
	CommissionRate    decimal.Decimal `json:"commissionRate"` // Percentage in [0,100]
	CommissionHistory []RateChange    `json:"commissionHistory,omitempty"`
	AuditFields

	// Refresh token state; empty when no refresh session exists.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GetUserID implements the accessor used by DTO mapping.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername implements the accessor used by DTO mapping.
func (u *User) GetUsername() string { return u.Username }

// GetName implements the accessor used by DTO mapping.
func (u *User) GetName() string { return u.Name }

// GoogleUserInfo holds the subset of the Google userinfo payload we consume
// when mapping a Google identity onto a local account.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
