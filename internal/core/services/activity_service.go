package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/google/uuid"
)

// activityServiceImpl implements the ActivitySvcFacade interface
type activityServiceImpl struct {
	BaseService
	activityRepo portsrepo.ActivityRepository
}

// NewActivityServiceImpl creates a new activity service
func NewActivityServiceImpl(activityRepo portsrepo.ActivityRepository) portssvc.ActivitySvcFacade {
	return &activityServiceImpl{activityRepo: activityRepo}
}

// Ensure activityServiceImpl implements the ActivitySvcFacade interface
var _ portssvc.ActivitySvcFacade = (*activityServiceImpl)(nil)

// Record appends one audit entry. A persistence failure is logged and
// swallowed: the audit trail must never fail the operation it describes.
func (s *activityServiceImpl) Record(ctx context.Context, rec portssvc.ActivityRecord) {
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		UserID:     rec.UserID,
		Action:     rec.Action,
		TargetType: rec.TargetType,
		TargetID:   rec.TargetID,
		TargetName: rec.TargetName,
		Details:    rec.Details,
		IPAddress:  rec.IPAddress,
		CreatedAt:  time.Now(),
	}
	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record activity",
			slog.String("action", string(rec.Action)),
			slog.String("user_id", rec.UserID))
	}
}

func (s *activityServiceImpl) ListActivities(ctx context.Context, params dto.ListActivitiesParams) ([]domain.ActivityLog, int, error) {
	filter := portsrepo.ActivityListFilter{
		Action: domain.ActivityAction(params.Action),
		UserID: params.UserID,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	entries, total, err := s.activityRepo.FindActivities(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return entries, total, nil
}
