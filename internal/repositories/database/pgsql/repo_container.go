package pgsql

import (
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		CampaignRepo:  newPgxCampaignRepository(dbPool),
		OrderRepo:     newPgxOrderRepository(dbPool),
		ActivityRepo:  newPgxActivityRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
