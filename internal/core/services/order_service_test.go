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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderRepository (based on OrderService usage) ---
type MockOrderRepository struct {
	mock.Mock
	FindOrderByIDFn func(ctx context.Context, orderID string) (*domain.Order, error)
	SaveOrderFn     func(ctx context.Context, order domain.Order) error
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.FindOrderByIDFn != nil {
		return m.FindOrderByIDFn(ctx, orderID)
	}
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderRepository) FindOrders(ctx context.Context, filter portsrepo.OrderListFilter) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) FindOrdersByCampaign(ctx context.Context, campaignID string) ([]domain.Order, error) {
	args := m.Called(ctx, campaignID)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	if m.SaveOrderFn != nil {
		return m.SaveOrderFn(ctx, order)
	}
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderItems(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkOrderDeleted(ctx context.Context, orderID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, orderID, deletedAt, deletedBy)
	return args.Error(0)
}

// Ensure MockOrderRepository implements the facade
var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockCampaignRepo *MockCampaignRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.OrderSvcFacade

	adminID       string
	salesPersonID string
	campaignID    string
	campaign      *domain.Campaign
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewOrderServiceImpl(suite.mockOrderRepo, suite.mockCampaignRepo, suite.mockUserRepo)

	suite.adminID = uuid.NewString()
	suite.salesPersonID = uuid.NewString()
	suite.campaignID = uuid.NewString()
	suite.campaign = &domain.Campaign{
		CampaignID:    suite.campaignID,
		SalesPersonID: suite.salesPersonID,
		Title:         "Raya Sale",
		Status:        domain.CampaignActive,
		StartDate:     time.Now().Add(-48 * time.Hour),
	}
}

func (suite *OrderServiceTestSuite) expectAdminRequester(ctx context.Context, userID string) {
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleAdmin}, nil).Once()
}

func (suite *OrderServiceTestSuite) expectSalesPersonRequester(ctx context.Context, userID string, rate decimal.Decimal) {
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleSalesPerson, CommissionRate: rate}, nil).Once()
}

// --- CreateOrder Tests ---

func (suite *OrderServiceTestSuite) TestCreateOrder_FreezesOwnerRate() {
	ctx := context.Background()
	ownerRate := decimal.NewFromInt(10)

	req := dto.CreateOrderRequest{
		CampaignID: suite.campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 2, BasePrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectAdminRequester(ctx, suite.adminID)
	// Second lookup resolves the campaign owner whose rate gets frozen.
	suite.expectSalesPersonRequester(ctx, suite.salesPersonID, ownerRate)
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(order domain.Order) bool {
		return order.CampaignID == suite.campaignID &&
			order.Commission.RateSnapshot.Equal(ownerRate) &&
			order.Commission.Amount.Equal(decimal.NewFromInt(10)) &&
			order.CreatedBy == suite.adminID
	})).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.True(order.OrderTotal().Equal(decimal.NewFromInt(100)))
	suite.True(order.Commission.RateSnapshot.Equal(ownerRate))
	suite.True(order.Commission.Amount.Equal(decimal.NewFromInt(10)))
	// Item totals are recomputed server side.
	suite.True(order.Items[0].TotalPrice.Equal(decimal.NewFromInt(100)))

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockCampaignRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InactiveCampaign() {
	ctx := context.Background()
	suite.campaign.Status = domain.CampaignDeleted

	req := dto.CreateOrderRequest{
		CampaignID: suite.campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectAdminRequester(ctx, suite.adminID)

	order, err := suite.service.CreateOrder(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInactiveCampaign)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ExpiredCampaignWindow() {
	ctx := context.Background()
	ended := time.Now().Add(-24 * time.Hour)
	suite.campaign.EndDate = &ended

	req := dto.CreateOrderRequest{
		CampaignID: suite.campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectAdminRequester(ctx, suite.adminID)

	order, err := suite.service.CreateOrder(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInactiveCampaign)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ForeignCampaignForbidden() {
	ctx := context.Background()
	otherSalesPersonID := uuid.NewString()

	req := dto.CreateOrderRequest{
		CampaignID: suite.campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectSalesPersonRequester(ctx, otherSalesPersonID, decimal.NewFromInt(5))

	order, err := suite.service.CreateOrder(ctx, req, otherSalesPersonID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

// --- UpdateOrder Tests ---

func (suite *OrderServiceTestSuite) TestUpdateOrder_RecomputesWithFrozenSnapshot() {
	ctx := context.Background()
	orderID := uuid.NewString()
	frozenRate := decimal.NewFromInt(5)

	existing := &domain.Order{
		OrderID:    orderID,
		CampaignID: suite.campaignID,
		Items: []domain.OrderItem{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(100), TotalPrice: decimal.NewFromInt(100)},
		},
		Commission: domain.Commission{
			Amount:       decimal.NewFromInt(5),
			RateSnapshot: frozenRate,
		},
	}

	req := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 4, BasePrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	// The owner's current rate is 20 now; the edit must still use the frozen 5.
	suite.expectAdminRequester(ctx, suite.adminID)
	suite.mockOrderRepo.On("UpdateOrderItems", ctx, mock.MatchedBy(func(order domain.Order) bool {
		return order.Commission.RateSnapshot.Equal(frozenRate) &&
			order.Commission.Amount.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateOrder(ctx, orderID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.True(updated.OrderTotal().Equal(decimal.NewFromInt(200)))
	suite.True(updated.Commission.RateSnapshot.Equal(frozenRate))
	suite.True(updated.Commission.Amount.Equal(decimal.NewFromInt(10)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ExplicitRateOverrideRejected() {
	ctx := context.Background()
	orderID := uuid.NewString()
	override := decimal.NewFromInt(50)

	req := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(100)},
		},
		CommissionRateSnapshot: &override,
	}

	updated, err := suite.service.UpdateOrder(ctx, orderID, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateOverride)
	suite.Nil(updated)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "FindOrderByID", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderItems", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ExplicitAmountOverrideRejected() {
	ctx := context.Background()
	orderID := uuid.NewString()
	override := decimal.NewFromInt(999)

	req := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(100)},
		},
		CommissionAmount: &override,
	}

	updated, err := suite.service.UpdateOrder(ctx, orderID, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateOverride)
	suite.Nil(updated)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderItems", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NotFound() {
	ctx := context.Background()
	orderID := uuid.NewString()

	req := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Kuih Raya", Quantity: 1, BasePrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateOrder(ctx, orderID, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListOrders Tests ---

func (suite *OrderServiceTestSuite) TestListOrders_AdminSeesAll() {
	ctx := context.Background()
	params := dto.ListOrdersParams{SortBy: "createdAt", Limit: 20}

	suite.expectAdminRequester(ctx, suite.adminID)
	suite.mockOrderRepo.On("FindOrders", ctx, mock.MatchedBy(func(filter portsrepo.OrderListFilter) bool {
		return filter.CampaignIDs == nil && filter.CampaignID == ""
	})).Return([]domain.Order{{OrderID: uuid.NewString()}}, 1, nil).Once()

	orders, total, err := suite.service.ListOrders(ctx, params, suite.adminID)

	suite.Require().NoError(err)
	suite.Len(orders, 1)
	suite.Equal(1, total)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestListOrders_SalesPersonScopedToOwnCampaigns() {
	ctx := context.Background()
	params := dto.ListOrdersParams{SortBy: "createdAt", Limit: 20}

	suite.expectSalesPersonRequester(ctx, suite.salesPersonID, decimal.NewFromInt(5))
	suite.mockCampaignRepo.On("FindCampaignsBySalesPerson", ctx, suite.salesPersonID).
		Return([]domain.Campaign{*suite.campaign}, nil).Once()
	suite.mockOrderRepo.On("FindOrders", ctx, mock.MatchedBy(func(filter portsrepo.OrderListFilter) bool {
		return len(filter.CampaignIDs) == 1 && filter.CampaignIDs[0] == suite.campaignID
	})).Return([]domain.Order{}, 0, nil).Once()

	_, _, err := suite.service.ListOrders(ctx, params, suite.salesPersonID)

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestListOrders_SalesPersonNoCampaignsMatchesNothing() {
	ctx := context.Background()
	params := dto.ListOrdersParams{SortBy: "createdAt", Limit: 20}

	suite.expectSalesPersonRequester(ctx, suite.salesPersonID, decimal.NewFromInt(5))
	suite.mockCampaignRepo.On("FindCampaignsBySalesPerson", ctx, suite.salesPersonID).
		Return([]domain.Campaign{}, nil).Once()
	suite.mockOrderRepo.On("FindOrders", ctx, mock.MatchedBy(func(filter portsrepo.OrderListFilter) bool {
		return filter.CampaignIDs != nil && len(filter.CampaignIDs) == 0
	})).Return([]domain.Order{}, 0, nil).Once()

	orders, total, err := suite.service.ListOrders(ctx, params, suite.salesPersonID)

	suite.Require().NoError(err)
	suite.Empty(orders)
	suite.Zero(total)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestListOrders_SalesPersonForeignCampaignFilterForbidden() {
	ctx := context.Background()
	foreignCampaignID := uuid.NewString()
	params := dto.ListOrdersParams{CampaignID: foreignCampaignID, SortBy: "createdAt", Limit: 20}

	suite.expectSalesPersonRequester(ctx, suite.salesPersonID, decimal.NewFromInt(5))
	suite.mockCampaignRepo.On("FindCampaignsBySalesPerson", ctx, suite.salesPersonID).
		Return([]domain.Campaign{*suite.campaign}, nil).Once()

	orders, total, err := suite.service.ListOrders(ctx, params, suite.salesPersonID)

	suite.Require().Error(err)
	suite.Nil(orders)
	suite.Zero(total)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "FindOrders", mock.Anything, mock.Anything)
}

// --- DeleteOrder Tests ---

func (suite *OrderServiceTestSuite) TestDeleteOrder_Success() {
	ctx := context.Background()
	orderID := uuid.NewString()

	existing := &domain.Order{OrderID: orderID, CampaignID: suite.campaignID}

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectAdminRequester(ctx, suite.adminID)
	suite.mockOrderRepo.On("MarkOrderDeleted", ctx, orderID, mock.AnythingOfType("time.Time"), suite.adminID).
		Return(nil).Once()

	err := suite.service.DeleteOrder(ctx, orderID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_ForeignCampaignForbidden() {
	ctx := context.Background()
	orderID := uuid.NewString()
	otherSalesPersonID := uuid.NewString()

	existing := &domain.Order{OrderID: orderID, CampaignID: suite.campaignID}

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.expectSalesPersonRequester(ctx, otherSalesPersonID, decimal.NewFromInt(5))

	err := suite.service.DeleteOrder(ctx, orderID, otherSalesPersonID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "MarkOrderDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
