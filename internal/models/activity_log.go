package models

import (
	"database/sql"
	"time"
)

// ActivityLog represents one immutable audit row. The table is insert-only.
type ActivityLog struct {
	ActivityID string         `db:"activity_id"`
	UserID     string         `db:"user_id"`
	Action     string         `db:"action"`
	TargetType sql.NullString `db:"target_type"`
	TargetID   sql.NullString `db:"target_id"`
	TargetName sql.NullString `db:"target_name"`
	Details    []byte         `db:"details"` // jsonb blob
	IPAddress  sql.NullString `db:"ip_address"`
	CreatedAt  time.Time      `db:"created_at"`
}
