package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// figuresQuery flattens each live order under a live campaign into the row
// shape the aggregator consumes. Soft-deleted orders and deleted campaigns
// never leave the database.
const figuresQuery = `
    SELECT o.order_id, o.campaign_id, c.sales_person_id, o.order_total, o.commission_amount, o.created_at
    FROM orders o
    JOIN campaigns c ON c.campaign_id = o.campaign_id
    WHERE o.deleted_at IS NULL AND c.status = 'active'`

func (r *PgxReportingRepository) queryFigures(ctx context.Context, query string, args ...any) ([]domain.OrderFigures, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order figures: %w", err)
	}
	defer rows.Close()

	figures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderFigures, error) {
		var f domain.OrderFigures
		err := row.Scan(&f.OrderID, &f.CampaignID, &f.SalesPersonID, &f.Total, &f.Commission, &f.CreatedAt)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect order figures: %w", err)
	}
	return figures, nil
}

func (r *PgxReportingRepository) FindLiveOrderFigures(ctx context.Context) ([]domain.OrderFigures, error) {
	return r.queryFigures(ctx, figuresQuery+" ORDER BY o.created_at, o.order_id;")
}

func (r *PgxReportingRepository) FindLiveOrderFiguresForSalesPerson(ctx context.Context, salesPersonID string) ([]domain.OrderFigures, error) {
	return r.queryFigures(ctx, figuresQuery+" AND c.sales_person_id = $1 ORDER BY o.created_at, o.order_id;", salesPersonID)
}

func (r *PgxReportingRepository) FindLiveOrderFiguresInRange(ctx context.Context, salesPersonID string, from, to time.Time) ([]domain.OrderFigures, error) {
	if salesPersonID == "" {
		return r.queryFigures(ctx,
			figuresQuery+" AND o.created_at >= $1 AND o.created_at <= $2 ORDER BY o.created_at, o.order_id;",
			from, to)
	}
	return r.queryFigures(ctx,
		figuresQuery+" AND c.sales_person_id = $1 AND o.created_at >= $2 AND o.created_at <= $3 ORDER BY o.created_at, o.order_id;",
		salesPersonID, from, to)
}
