package services

import (
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserServiceImpl(repos.UserRepo, repos.CampaignRepo, repos.ReportingRepo)
	container.Campaign = NewCampaignServiceImpl(repos.CampaignRepo, repos.UserRepo)
	container.Order = NewOrderServiceImpl(repos.OrderRepo, repos.CampaignRepo, repos.UserRepo)
	container.Activity = NewActivityServiceImpl(repos.ActivityRepo)
	container.Reporting = NewReportingServiceImpl(repos.ReportingRepo, repos.CampaignRepo, repos.UserRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
