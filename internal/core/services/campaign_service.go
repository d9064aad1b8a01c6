package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/google/uuid"
)

// campaignServiceImpl implements the CampaignSvcFacade interface
type campaignServiceImpl struct {
	BaseService
	campaignRepo portsrepo.CampaignRepositoryFacade
	userRepo     portsrepo.UserReader
}

// NewCampaignServiceImpl creates a new campaign service
func NewCampaignServiceImpl(campaignRepo portsrepo.CampaignRepositoryFacade, userRepo portsrepo.UserReader) portssvc.CampaignSvcFacade {
	return &campaignServiceImpl{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
	}
}

// Ensure campaignServiceImpl implements the CampaignSvcFacade interface
var _ portssvc.CampaignSvcFacade = (*campaignServiceImpl)(nil)

func (s *campaignServiceImpl) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorUserID string) (*domain.Campaign, error) {
	owner, err := s.userRepo.FindUserByID(ctx, req.SalesPersonID)
	if err != nil {
		return nil, fmt.Errorf("sales person not found: %w", err)
	}
	if owner.Role != domain.RoleSalesPerson {
		return nil, fmt.Errorf("campaign owner must be a sales person: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil && req.EndDate.Before(startDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	campaign := domain.Campaign{
		CampaignID:    uuid.NewString(),
		SalesPersonID: req.SalesPersonID,
		Title:         req.Title,
		Platform:      domain.CampaignPlatform(req.Platform),
		Type:          domain.CampaignType(req.Type),
		URL:           req.URL,
		ImageURL:      req.ImageURL,
		Status:        domain.CampaignActive,
		StartDate:     startDate,
		EndDate:       req.EndDate,
		TargetROI:     req.TargetROI,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.campaignRepo.SaveCampaign(ctx, campaign); err != nil {
		s.LogError(ctx, err, "Failed to save new campaign", slog.String("title", req.Title))
		return nil, err
	}

	s.LogInfo(ctx, "Campaign created",
		slog.String("campaign_id", campaign.CampaignID),
		slog.String("sales_person_id", campaign.SalesPersonID))
	return &campaign, nil
}

func (s *campaignServiceImpl) GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign by ID: %w", err)
	}
	return campaign, nil
}

func (s *campaignServiceImpl) ListCampaigns(ctx context.Context, params dto.ListCampaignsParams, requestingUserID string) ([]domain.Campaign, int, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve requesting user: %w", err)
	}

	filter := portsrepo.CampaignListFilter{
		SalesPersonID: params.SalesPerson,
		Search:        params.Search,
		Platform:      domain.CampaignPlatform(params.Platform),
		Type:          domain.CampaignType(params.Type),
		CreatedFrom:   params.CreatedFrom,
		CreatedTo:     params.CreatedTo,
		SortBy:        params.SortBy,
		SortAsc:       params.SortAsc,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	// Sales persons only ever see their own campaigns, whatever the filter says.
	if requester.Role == domain.RoleSalesPerson {
		filter.SalesPersonID = requestingUserID
	}

	campaigns, total, err := s.campaignRepo.FindCampaigns(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

func (s *campaignServiceImpl) GetOrderStatsForCampaigns(ctx context.Context, campaignIDs []string) (map[string]portsrepo.CampaignOrderStats, error) {
	stats, err := s.campaignRepo.FindOrderStatsForCampaigns(ctx, campaignIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign order stats: %w", err)
	}
	return stats, nil
}

func (s *campaignServiceImpl) UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != domain.CampaignActive {
		return nil, fmt.Errorf("campaign is deleted: %w", apperrors.ErrNotFound)
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Platform != nil {
		campaign.Platform = domain.CampaignPlatform(*req.Platform)
	}
	if req.Type != nil {
		campaign.Type = domain.CampaignType(*req.Type)
	}
	if req.URL != nil {
		campaign.URL = *req.URL
	}
	if req.ImageURL != nil {
		campaign.ImageURL = *req.ImageURL
	}
	if req.StartDate != nil {
		campaign.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	if req.TargetROI != nil {
		campaign.TargetROI = req.TargetROI
	}
	if campaign.EndDate != nil && campaign.EndDate.Before(campaign.StartDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	campaign.LastUpdatedAt = time.Now()
	campaign.LastUpdatedBy = requestingUserID

	if err := s.campaignRepo.UpdateCampaign(ctx, *campaign); err != nil {
		s.LogError(ctx, err, "Failed to update campaign", slog.String("campaign_id", campaignID))
		return nil, err
	}
	return campaign, nil
}

func (s *campaignServiceImpl) DeleteCampaign(ctx context.Context, campaignID string, requestingUserID string) (int, error) {
	cascaded, err := s.campaignRepo.MarkCampaignDeleted(ctx, campaignID, time.Now(), requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete campaign", slog.String("campaign_id", campaignID))
		return 0, err
	}
	s.LogInfo(ctx, "Campaign deleted",
		slog.String("campaign_id", campaignID),
		slog.Int("orders_cascaded", cascaded))
	return cascaded, nil
}
