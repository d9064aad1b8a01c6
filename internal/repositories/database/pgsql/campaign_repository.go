package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCampaignRepository struct {
	BaseRepository
}

func newPgxCampaignRepository(db *pgxpool.Pool) portsrepo.CampaignRepositoryFacade {
	return &PgxCampaignRepository{BaseRepository{Pool: db}}
}

// Ensure PgxCampaignRepository implements portsrepo.CampaignRepositoryFacade
var _ portsrepo.CampaignRepositoryFacade = (*PgxCampaignRepository)(nil)

const campaignColumns = `campaign_id, sales_person_id, title, platform, type, url, image_url,
		status, start_date, end_date, target_roi,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCampaign(row pgx.Row) (models.Campaign, error) {
	var m models.Campaign
	err := row.Scan(
		&m.CampaignID,
		&m.SalesPersonID,
		&m.Title,
		&m.Platform,
		&m.Type,
		&m.URL,
		&m.ImageURL,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.TargetROI,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	query := `
        INSERT INTO campaigns (campaign_id, sales_person_id, title, platform, type, url, image_url,
            status, start_date, end_date, target_roi,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CampaignID,
		m.SalesPersonID,
		m.Title,
		m.Platform,
		m.Type,
		m.URL,
		m.ImageURL,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.TargetROI,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

func (r *PgxCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = $1;`
	m, err := scanCampaign(r.Pool.QueryRow(ctx, query, campaignID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign by ID %s: %w", campaignID, err)
	}
	campaign := mapping.ToDomainCampaign(m)
	return &campaign, nil
}

var campaignSortColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"start_date": "start_date",
}

func (r *PgxCampaignRepository) FindCampaigns(ctx context.Context, filter portsrepo.CampaignListFilter) ([]domain.Campaign, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	conditions := []string{"status = 'active'"}
	args := []any{}
	argPos := 1
	if filter.SalesPersonID != "" {
		conditions = append(conditions, fmt.Sprintf("sales_person_id = $%d", argPos))
		args = append(args, filter.SalesPersonID)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.Platform != "" {
		conditions = append(conditions, fmt.Sprintf("platform = $%d", argPos))
		args = append(args, string(filter.Platform))
		argPos++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, string(filter.Type))
		argPos++
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *filter.CreatedFrom)
		argPos++
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argPos))
		args = append(args, *filter.CreatedTo)
		argPos++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	sortCol, ok := campaignSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where +
		fmt.Sprintf(" ORDER BY %s %s, campaign_id LIMIT $%d OFFSET $%d;", sortCol, direction, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	modelCampaigns := []models.Campaign{}
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		modelCampaigns = append(modelCampaigns, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating campaign rows: %w", rows.Err())
	}

	return mapping.ToDomainCampaignSlice(modelCampaigns), total, nil
}

func (r *PgxCampaignRepository) FindCampaignsBySalesPerson(ctx context.Context, salesPersonID string) ([]domain.Campaign, error) {
	query := `
        SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE sales_person_id = $1 AND status = 'active'
        ORDER BY created_at DESC, campaign_id;
    `
	rows, err := r.Pool.Query(ctx, query, salesPersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns for sales person: %w", err)
	}
	defer rows.Close()

	modelCampaigns := []models.Campaign{}
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		modelCampaigns = append(modelCampaigns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", rows.Err())
	}
	return mapping.ToDomainCampaignSlice(modelCampaigns), nil
}

func (r *PgxCampaignRepository) FindActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	query := `
        SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE status = 'active'
        ORDER BY created_at DESC, campaign_id;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active campaigns: %w", err)
	}
	defer rows.Close()

	modelCampaigns := []models.Campaign{}
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		modelCampaigns = append(modelCampaigns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", rows.Err())
	}
	return mapping.ToDomainCampaignSlice(modelCampaigns), nil
}

func (r *PgxCampaignRepository) FindOrderStatsForCampaigns(ctx context.Context, campaignIDs []string) (map[string]portsrepo.CampaignOrderStats, error) {
	stats := make(map[string]portsrepo.CampaignOrderStats, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return stats, nil
	}
	query := `
        SELECT campaign_id, COUNT(*), COALESCE(SUM(order_total), 0), COALESCE(SUM(commission_amount), 0)
        FROM orders
        WHERE campaign_id = ANY($1) AND deleted_at IS NULL
        GROUP BY campaign_id;
    `
	rows, err := r.Pool.Query(ctx, query, campaignIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign order stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s portsrepo.CampaignOrderStats
		if err := rows.Scan(&s.CampaignID, &s.OrderCount, &s.TotalSales, &s.TotalCommission); err != nil {
			return nil, fmt.Errorf("failed to scan campaign stats row: %w", err)
		}
		stats[s.CampaignID] = s
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating campaign stats rows: %w", rows.Err())
	}
	return stats, nil
}

func (r *PgxCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	// sales_person_id is intentionally not part of the SET list.
	query := `
        UPDATE campaigns
        SET title = $1, platform = $2, type = $3, url = $4, image_url = $5,
            start_date = $6, end_date = $7, target_roi = $8,
            last_updated_at = $9, last_updated_by = $10
        WHERE campaign_id = $11 AND status = 'active';
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Platform,
		m.Type,
		m.URL,
		m.ImageURL,
		m.StartDate,
		m.EndDate,
		m.TargetROI,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CampaignID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update campaign query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkCampaignDeleted soft-deletes the campaign and its live orders in one
// transaction so reporting never sees a live order under a deleted campaign.
func (r *PgxCampaignRepository) MarkCampaignDeleted(ctx context.Context, campaignID string, deletedAt time.Time, deletedBy string) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	campaignQuery := `
        UPDATE campaigns
        SET status = 'deleted', last_updated_at = $1, last_updated_by = $2
        WHERE campaign_id = $3 AND status = 'active';
    `
	cmdTag, err := tx.Exec(ctx, campaignQuery, deletedAt, deletedBy, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark campaign deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("campaign not found or already deleted: %w", apperrors.ErrNotFound)
	}

	orderQuery := `
        UPDATE orders
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE campaign_id = $3 AND deleted_at IS NULL;
    `
	orderTag, err := tx.Exec(ctx, orderQuery, deletedAt, deletedBy, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to cascade delete to orders: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(orderTag.RowsAffected()), nil
}
