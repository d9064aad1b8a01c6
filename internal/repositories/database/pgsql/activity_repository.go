package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(db *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository{Pool: db}}
}

// Ensure PgxActivityRepository implements portsrepo.ActivityRepository
var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	m, err := mapping.ToModelActivityLog(entry)
	if err != nil {
		return fmt.Errorf("failed to map activity entry: %w", err)
	}
	query := `
        INSERT INTO activity_logs (activity_id, user_id, action, target_type, target_id, target_name,
            details, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err = r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.UserID,
		m.Action,
		m.TargetType,
		m.TargetID,
		m.TargetName,
		m.Details,
		m.IPAddress,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}
	return nil
}

func (r *PgxActivityRepository) FindActivities(ctx context.Context, filter portsrepo.ActivityListFilter) ([]domain.ActivityLog, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	conditions := []string{}
	args := []any{}
	argPos := 1
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argPos))
		args = append(args, string(filter.Action))
		argPos++
	}
	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	query := `
        SELECT activity_id, user_id, action, target_type, target_id, target_name, details, ip_address, created_at
        FROM activity_logs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, activity_id LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activity entries: %w", err)
	}
	defer rows.Close()

	modelEntries := []models.ActivityLog{}
	for rows.Next() {
		var m models.ActivityLog
		err := rows.Scan(
			&m.ActivityID,
			&m.UserID,
			&m.Action,
			&m.TargetType,
			&m.TargetID,
			&m.TargetName,
			&m.Details,
			&m.IPAddress,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating activity rows: %w", rows.Err())
	}

	entries, err := mapping.ToDomainActivityLogSlice(modelEntries)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map activity rows: %w", err)
	}
	return entries, total, nil
}
