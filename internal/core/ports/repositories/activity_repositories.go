package repositories

import (
	"context"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
)

// ActivityListFilter narrows and pages the audit trail.
type ActivityListFilter struct {
	Action domain.ActivityAction
	UserID string
	Limit  int
	Offset int
}

// ActivityRepository persists the append-only audit trail. There is no update
// or delete: entries are immutable once written.
type ActivityRepository interface {
	// SaveActivity appends one audit entry.
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error

	// FindActivities retrieves a filtered page of entries, newest first, plus
	// the total count matching the filter.
	FindActivities(ctx context.Context, filter ActivityListFilter) ([]domain.ActivityLog, int, error)
}
