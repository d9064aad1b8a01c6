package services

import (
	"context"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
)

// ActivityRecord describes one audit entry to append. The service fills in
// the ID and timestamp.
type ActivityRecord struct {
	UserID     string
	Action     domain.ActivityAction
	TargetType domain.TargetType
	TargetID   string
	TargetName string
	Details    map[string]any
	IPAddress  string
}

// ActivitySvcFacade records and lists the append-only audit trail. Record
// never fails the caller's operation: persistence errors are logged and
// swallowed.
type ActivitySvcFacade interface {
	// Record appends one audit entry asynchronously from the caller's point
	// of view; errors are logged, not returned.
	Record(ctx context.Context, rec ActivityRecord)

	// ListActivities retrieves a filtered page of audit entries, newest
	// first, plus the total count.
	ListActivities(ctx context.Context, params dto.ListActivitiesParams) ([]domain.ActivityLog, int, error)
}
