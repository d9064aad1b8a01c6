package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
)

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) (models.ActivityLog, error) {
	m := models.ActivityLog{
		ActivityID: d.ActivityID,
		UserID:     d.UserID,
		Action:     string(d.Action),
		CreatedAt:  d.CreatedAt,
	}
	if d.TargetType != "" {
		m.TargetType.String = string(d.TargetType)
		m.TargetType.Valid = true
	}
	if d.TargetID != "" {
		m.TargetID.String = d.TargetID
		m.TargetID.Valid = true
	}
	if d.TargetName != "" {
		m.TargetName.String = d.TargetName
		m.TargetName.Valid = true
	}
	if d.IPAddress != "" {
		m.IPAddress.String = d.IPAddress
		m.IPAddress.Valid = true
	}
	if d.Details != nil {
		detailsJSON, err := json.Marshal(d.Details)
		if err != nil {
			return models.ActivityLog{}, fmt.Errorf("failed to marshal activity details: %w", err)
		}
		m.Details = detailsJSON
	}
	return m, nil
}

// ToDomainActivityLog converts a model ActivityLog to a domain ActivityLog
func ToDomainActivityLog(m models.ActivityLog) (domain.ActivityLog, error) {
	d := domain.ActivityLog{
		ActivityID: m.ActivityID,
		UserID:     m.UserID,
		Action:     domain.ActivityAction(m.Action),
		CreatedAt:  m.CreatedAt,
	}
	if m.TargetType.Valid {
		d.TargetType = domain.TargetType(m.TargetType.String)
	}
	if m.TargetID.Valid {
		d.TargetID = m.TargetID.String
	}
	if m.TargetName.Valid {
		d.TargetName = m.TargetName.String
	}
	if m.IPAddress.Valid {
		d.IPAddress = m.IPAddress.String
	}
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &d.Details); err != nil {
			return domain.ActivityLog{}, fmt.Errorf("failed to unmarshal details for activity %s: %w", m.ActivityID, err)
		}
	}
	return d, nil
}

// ToDomainActivityLogSlice converts model ActivityLogs to domain ActivityLogs
func ToDomainActivityLogSlice(ms []models.ActivityLog) ([]domain.ActivityLog, error) {
	ds := make([]domain.ActivityLog, len(ms))
	for i, m := range ms {
		d, err := ToDomainActivityLog(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
