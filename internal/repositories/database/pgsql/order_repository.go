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

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(db *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository{Pool: db}}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryFacade
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, campaign_id, items, order_total, commission_amount, commission_rate_snapshot,
		deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.CampaignID,
		&m.Items,
		&m.OrderTotal,
		&m.CommissionAmount,
		&m.CommissionRateSnapshot,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m, err := mapping.ToModelOrder(order)
	if err != nil {
		return fmt.Errorf("failed to map order for save: %w", err)
	}
	query := `
        INSERT INTO orders (order_id, campaign_id, items, order_total, commission_amount, commission_rate_snapshot,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = r.Pool.Exec(ctx, query,
		m.OrderID,
		m.CampaignID,
		m.Items,
		m.OrderTotal,
		m.CommissionAmount,
		m.CommissionRateSnapshot,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 AND deleted_at IS NULL;`
	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}
	order, err := mapping.ToDomainOrder(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map order row: %w", err)
	}
	return &order, nil
}

var orderSortColumns = map[portsrepo.OrderSortField]string{
	portsrepo.OrderSortCreatedAt:  "created_at",
	portsrepo.OrderSortTotal:      "order_total",
	portsrepo.OrderSortCommission: "commission_amount",
}

func (r *PgxOrderRepository) FindOrders(ctx context.Context, filter portsrepo.OrderListFilter) ([]domain.Order, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	conditions := []string{"deleted_at IS NULL"}
	args := []any{}
	argPos := 1
	if filter.CampaignID != "" {
		conditions = append(conditions, fmt.Sprintf("campaign_id = $%d", argPos))
		args = append(args, filter.CampaignID)
		argPos++
	}
	if filter.CampaignIDs != nil {
		conditions = append(conditions, fmt.Sprintf("campaign_id = ANY($%d)", argPos))
		args = append(args, filter.CampaignIDs)
		argPos++
	}
	if filter.ItemSearch != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(items) AS item WHERE item->>'name' ILIKE $%d)", argPos))
		args = append(args, "%"+filter.ItemSearch+"%")
		argPos++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	sortCol, ok := orderSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY %s %s, order_id LIMIT $%d OFFSET $%d;", sortCol, direction, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	modelOrders := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		modelOrders = append(modelOrders, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating order rows: %w", rows.Err())
	}

	orders, err := mapping.ToDomainOrderSlice(modelOrders)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map order rows: %w", err)
	}
	return orders, total, nil
}

func (r *PgxOrderRepository) FindOrdersByCampaign(ctx context.Context, campaignID string) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE campaign_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC, order_id;
    `
	rows, err := r.Pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for campaign: %w", err)
	}
	defer rows.Close()

	modelOrders := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		modelOrders = append(modelOrders, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", rows.Err())
	}
	return mapping.ToDomainOrderSlice(modelOrders)
}

// UpdateOrderItems rewrites the items and the figures derived from them.
// commission_rate_snapshot is deliberately absent from the SET list; the
// frozen rate cannot change after insert.
func (r *PgxOrderRepository) UpdateOrderItems(ctx context.Context, order domain.Order) error {
	m, err := mapping.ToModelOrder(order)
	if err != nil {
		return fmt.Errorf("failed to map order for update: %w", err)
	}
	query := `
        UPDATE orders
        SET items = $1, order_total = $2, commission_amount = $3,
            last_updated_at = $4, last_updated_by = $5
        WHERE order_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Items,
		m.OrderTotal,
		m.CommissionAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.OrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update order query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxOrderRepository) MarkOrderDeleted(ctx context.Context, orderID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE orders
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE order_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
