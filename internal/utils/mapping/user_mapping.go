package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
)

// ToModelUser converts a domain User to a model User. The commission history
// is serialized into the jsonb column.
func ToModelUser(d domain.User) (models.User, error) {
	history := make([]models.RateChangeRecord, len(d.CommissionHistory))
	for i, h := range d.CommissionHistory {
		history[i] = models.RateChangeRecord{
			Rate:      h.Rate,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to marshal commission history: %w", err)
	}

	m := models.User{
		UserID:            d.UserID,
		Username:          d.Username,
		PasswordHash:      d.PasswordHash,
		Name:              d.Name,
		Role:              models.UserRole(d.Role),
		CommissionRate:    d.CommissionRate,
		CommissionHistory: historyJSON,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash.String = d.RefreshTokenHash
		m.RefreshTokenHash.Valid = true
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime.Time = *d.RefreshTokenExpiryTime
		m.RefreshTokenExpiryTime.Valid = true
	}
	return m, nil
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) (domain.User, error) {
	var history []models.RateChangeRecord
	if len(m.CommissionHistory) > 0 {
		if err := json.Unmarshal(m.CommissionHistory, &history); err != nil {
			return domain.User{}, fmt.Errorf("failed to unmarshal commission history for user %s: %w", m.UserID, err)
		}
	}
	domainHistory := make([]domain.RateChange, len(history))
	for i, h := range history {
		domainHistory[i] = domain.RateChange{
			Rate:      h.Rate,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		}
	}

	d := domain.User{
		UserID:            m.UserID,
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		Name:              m.Name,
		Role:              domain.UserRole(m.Role),
		CommissionRate:    m.CommissionRate,
		CommissionHistory: domainHistory,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d, nil
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) ([]domain.User, error) {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		d, err := ToDomainUser(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
