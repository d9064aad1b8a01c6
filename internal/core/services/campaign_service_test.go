package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CampaignServiceTestSuite struct {
	suite.Suite
	mockCampaignRepo *MockCampaignRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.CampaignSvcFacade

	adminID       string
	salesPersonID string
}

func (suite *CampaignServiceTestSuite) SetupTest() {
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewCampaignServiceImpl(suite.mockCampaignRepo, suite.mockUserRepo)

	suite.adminID = uuid.NewString()
	suite.salesPersonID = uuid.NewString()
}

func validCreateCampaignRequest(salesPersonID string) dto.CreateCampaignRequest {
	return dto.CreateCampaignRequest{
		SalesPersonID: salesPersonID,
		Title:         "Merdeka Live Sale",
		Platform:      "facebook",
		Type:          "live_post",
		URL:           "https://facebook.com/events/merdeka-live",
	}
}

// --- CreateCampaign Tests ---

func (suite *CampaignServiceTestSuite) TestCreateCampaign_Success() {
	ctx := context.Background()
	req := validCreateCampaignRequest(suite.salesPersonID)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.salesPersonID).
		Return(&domain.User{UserID: suite.salesPersonID, Role: domain.RoleSalesPerson, CommissionRate: decimal.NewFromInt(5)}, nil).Once()
	suite.mockCampaignRepo.On("SaveCampaign", ctx, mock.MatchedBy(func(campaign domain.Campaign) bool {
		return campaign.SalesPersonID == suite.salesPersonID &&
			campaign.Status == domain.CampaignActive &&
			campaign.Platform == domain.PlatformFacebook &&
			campaign.Type == domain.TypeLivePost &&
			campaign.CreatedBy == suite.adminID
	})).Return(nil).Once()

	created, err := suite.service.CreateCampaign(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.CampaignID)
	// Omitted start date defaults to creation time.
	suite.WithinDuration(time.Now(), created.StartDate, 5*time.Second)
	suite.Nil(created.EndDate)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_AdminOwnerRejected() {
	ctx := context.Background()
	req := validCreateCampaignRequest(suite.adminID)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).
		Return(&domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}, nil).Once()

	created, err := suite.service.CreateCampaign(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_OwnerNotFound() {
	ctx := context.Background()
	req := validCreateCampaignRequest(suite.salesPersonID)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.salesPersonID).
		Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateCampaign(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_EndBeforeStartRejected() {
	ctx := context.Background()
	start := time.Now()
	end := start.Add(-72 * time.Hour)
	req := validCreateCampaignRequest(suite.salesPersonID)
	req.StartDate = &start
	req.EndDate = &end

	suite.mockUserRepo.On("FindUserByID", ctx, suite.salesPersonID).
		Return(&domain.User{UserID: suite.salesPersonID, Role: domain.RoleSalesPerson}, nil).Once()

	created, err := suite.service.CreateCampaign(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

// --- ListCampaigns Tests ---

func (suite *CampaignServiceTestSuite) TestListCampaigns_AdminFilterPassesThrough() {
	ctx := context.Background()
	params := dto.ListCampaignsParams{SalesPerson: suite.salesPersonID, SortBy: "created_at", Limit: 20}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).
		Return(&domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockCampaignRepo.On("FindCampaigns", ctx, mock.MatchedBy(func(filter portsrepo.CampaignListFilter) bool {
		return filter.SalesPersonID == suite.salesPersonID
	})).Return([]domain.Campaign{{CampaignID: uuid.NewString()}}, 1, nil).Once()

	campaigns, total, err := suite.service.ListCampaigns(ctx, params, suite.adminID)

	suite.Require().NoError(err)
	suite.Len(campaigns, 1)
	suite.Equal(1, total)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestListCampaigns_SalesPersonForcedToOwnScope() {
	ctx := context.Background()
	otherID := uuid.NewString()
	// A sales person asking for someone else's campaigns gets their own anyway.
	params := dto.ListCampaignsParams{SalesPerson: otherID, SortBy: "created_at", Limit: 20}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.salesPersonID).
		Return(&domain.User{UserID: suite.salesPersonID, Role: domain.RoleSalesPerson}, nil).Once()
	suite.mockCampaignRepo.On("FindCampaigns", ctx, mock.MatchedBy(func(filter portsrepo.CampaignListFilter) bool {
		return filter.SalesPersonID == suite.salesPersonID
	})).Return([]domain.Campaign{}, 0, nil).Once()

	_, _, err := suite.service.ListCampaigns(ctx, params, suite.salesPersonID)

	suite.Require().NoError(err)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

// --- UpdateCampaign Tests ---

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_Success() {
	ctx := context.Background()
	campaignID := uuid.NewString()
	newTitle := "Merdeka Mega Sale"

	existing := &domain.Campaign{
		CampaignID:    campaignID,
		SalesPersonID: suite.salesPersonID,
		Title:         "Merdeka Live Sale",
		Status:        domain.CampaignActive,
		StartDate:     time.Now().Add(-48 * time.Hour),
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, campaignID).Return(existing, nil).Once()
	suite.mockCampaignRepo.On("UpdateCampaign", ctx, mock.MatchedBy(func(campaign domain.Campaign) bool {
		return campaign.Title == newTitle &&
			campaign.SalesPersonID == suite.salesPersonID &&
			campaign.LastUpdatedBy == suite.adminID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCampaign(ctx, campaignID, dto.UpdateCampaignRequest{Title: &newTitle}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(newTitle, updated.Title)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_DeletedCampaignNotFound() {
	ctx := context.Background()
	campaignID := uuid.NewString()
	newTitle := "Too Late"

	existing := &domain.Campaign{
		CampaignID: campaignID,
		Status:     domain.CampaignDeleted,
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, campaignID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateCampaign(ctx, campaignID, dto.UpdateCampaignRequest{Title: &newTitle}, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "UpdateCampaign", mock.Anything, mock.Anything)
}

// --- DeleteCampaign Tests ---

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_ReturnsCascadeCount() {
	ctx := context.Background()
	campaignID := uuid.NewString()

	suite.mockCampaignRepo.On("MarkCampaignDeleted", ctx, campaignID, mock.AnythingOfType("time.Time"), suite.adminID).
		Return(3, nil).Once()

	cascaded, err := suite.service.DeleteCampaign(ctx, campaignID, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(3, cascaded)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_RepoError() {
	ctx := context.Background()
	campaignID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockCampaignRepo.On("MarkCampaignDeleted", ctx, campaignID, mock.AnythingOfType("time.Time"), suite.adminID).
		Return(0, expectedErr).Once()

	cascaded, err := suite.service.DeleteCampaign(ctx, campaignID, suite.adminID)

	suite.Require().Error(err)
	suite.Zero(cascaded)
	suite.ErrorIs(err, expectedErr)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

// --- GetOrderStatsForCampaigns Tests ---

func (suite *CampaignServiceTestSuite) TestGetOrderStatsForCampaigns_Success() {
	ctx := context.Background()
	campaignID := uuid.NewString()
	ids := []string{campaignID}

	expected := map[string]portsrepo.CampaignOrderStats{
		campaignID: {
			CampaignID:      campaignID,
			OrderCount:      2,
			TotalSales:      decimal.NewFromInt(300),
			TotalCommission: decimal.NewFromInt(15),
		},
	}

	suite.mockCampaignRepo.On("FindOrderStatsForCampaigns", ctx, ids).Return(expected, nil).Once()

	stats, err := suite.service.GetOrderStatsForCampaigns(ctx, ids)

	suite.Require().NoError(err)
	suite.Equal(expected, stats)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}
