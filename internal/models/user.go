package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// UserRole mirrors domain.UserRole at the storage layer.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSalesPerson UserRole = "sales_person"
)

// RateChangeRecord is one element of the commission_history jsonb column.
type RateChangeRecord struct {
	Rate      decimal.Decimal `json:"rate"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy string          `json:"changedBy"`
}

// User represents an account row. Username is stored lowercase and carries a
// unique index; commission_history is an append-only jsonb array.
type User struct {
	UserID            string          `db:"user_id"`
	Username          string          `db:"username"`
	PasswordHash      string          `db:"password_hash"`
	Name              string          `db:"name"`
	Role              UserRole        `db:"role"`
	CommissionRate    decimal.Decimal `db:"commission_rate"`
	CommissionHistory []byte          `db:"commission_history"` // jsonb []RateChangeRecord
	AuditFields

	// Refresh token fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
