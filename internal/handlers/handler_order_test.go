package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/handlers"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID string, requestingUserID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams, requestingUserID string) ([]domain.Order, int, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}
func (m *MockOrderService) ListOrdersByCampaign(ctx context.Context, campaignID string, requestingUserID string) ([]domain.Order, error) {
	args := m.Called(ctx, campaignID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, requestingUserID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) DeleteOrder(ctx context.Context, orderID string, requestingUserID string) error {
	args := m.Called(ctx, orderID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, rec portssvc.ActivityRecord) {
	m.Called(ctx, rec)
}
func (m *MockActivityService) ListActivities(ctx context.Context, params dto.ListActivitiesParams) ([]domain.ActivityLog, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ActivityLog), args.Int(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.ActivitySvcFacade = (*MockActivityService)(nil)

// --- Test Suite ---
type OrderHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockOrderService    *MockOrderService
	mockActivityService *MockActivityService
	jwtSecret           string
}

func (suite *OrderHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "sct-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockOrderService = new(MockOrderService)
	suite.mockActivityService = new(MockActivityService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterOrderRoutes(v1, suite.mockOrderService, suite.mockActivityService)
}

func (suite *OrderHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OrderHandlerTestSuite) TestCreateOrder_Success() {
	userID := uuid.NewString()
	campaignID := uuid.NewString()
	rateSnapshot := decimal.NewFromInt(10)

	reqBody := dto.CreateOrderRequest{
		CampaignID: campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Sambal Set", Quantity: 2, BasePrice: decimal.NewFromInt(50)},
		},
	}

	createdOrder := &domain.Order{
		OrderID:    uuid.NewString(),
		CampaignID: campaignID,
		Items: []domain.OrderItem{
			{Name: "Sambal Set", Quantity: 2, BasePrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(100)},
		},
		Commission: domain.Commission{
			Amount:       decimal.NewFromInt(10),
			RateSnapshot: rateSnapshot,
		},
	}

	suite.mockOrderService.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
			return req.CampaignID == campaignID && len(req.Items) == 1
		}),
		userID,
	).Return(createdOrder, nil).Once()
	suite.mockActivityService.On("Record",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(rec portssvc.ActivityRecord) bool {
			return rec.Action == domain.ActionCreateOrder && rec.TargetID == createdOrder.OrderID && rec.UserID == userID
		}),
	).Return().Once()

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPost, "/api/v1/orders", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(createdOrder.OrderID, resp.OrderID)
	suite.True(resp.CommissionRateSnapshot.Equal(rateSnapshot))
	suite.True(resp.OrderTotal.Equal(decimal.NewFromInt(100)))

	suite.mockOrderService.AssertExpectations(suite.T())
	suite.mockActivityService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_InactiveCampaign() {
	userID := uuid.NewString()

	reqBody := dto.CreateOrderRequest{
		CampaignID: uuid.NewString(),
		Items: []dto.OrderItemRequest{
			{Name: "Sambal Set", Quantity: 1, BasePrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockOrderService.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreateOrderRequest"),
		userID,
	).Return(nil, apperrors.ErrInactiveCampaign).Once()

	token := suite.generateTestToken(userID, domain.RoleSalesPerson)
	w := suite.doJSON(http.MethodPost, "/api/v1/orders", token, reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockOrderService.AssertExpectations(suite.T())
	suite.mockActivityService.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_ZeroPricedItemAccepted() {
	userID := uuid.NewString()
	campaignID := uuid.NewString()

	// Free samples are legitimate line items; a zero base price must pass
	// binding and reach the service.
	reqBody := dto.CreateOrderRequest{
		CampaignID: campaignID,
		Items: []dto.OrderItemRequest{
			{Name: "Free Sample", Quantity: 1, BasePrice: decimal.Zero},
		},
	}

	createdOrder := &domain.Order{
		OrderID:    uuid.NewString(),
		CampaignID: campaignID,
		Items: []domain.OrderItem{
			{Name: "Free Sample", Quantity: 1, BasePrice: decimal.Zero, TotalPrice: decimal.Zero},
		},
		Commission: domain.Commission{
			Amount:       decimal.Zero,
			RateSnapshot: decimal.NewFromInt(10),
		},
	}

	suite.mockOrderService.On("CreateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
			return len(req.Items) == 1 && req.Items[0].BasePrice.IsZero()
		}),
		userID,
	).Return(createdOrder, nil).Once()
	suite.mockActivityService.On("Record", mock.Anything, mock.Anything).Return().Once()

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPost, "/api/v1/orders", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_NegativePriceRejected() {
	userID := uuid.NewString()

	reqBody := dto.CreateOrderRequest{
		CampaignID: uuid.NewString(),
		Items: []dto.OrderItemRequest{
			{Name: "Sambal Set", Quantity: 1, BasePrice: decimal.NewFromInt(-5)},
		},
	}

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPost, "/api/v1/orders", token, reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_MissingItemsRejected() {
	userID := uuid.NewString()

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPost, "/api/v1/orders", token, map[string]any{"campaignID": uuid.NewString()})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestUpdateOrder_SalesPersonForbiddenByRole() {
	userID := uuid.NewString()
	orderID := uuid.NewString()

	reqBody := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Sambal Set", Quantity: 1, BasePrice: decimal.NewFromInt(50)},
		},
	}

	// Sales persons cannot edit orders at all; the capability gate rejects
	// before the handler runs.
	token := suite.generateTestToken(userID, domain.RoleSalesPerson)
	w := suite.doJSON(http.MethodPut, "/api/v1/orders/"+orderID, token, reqBody)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlerTestSuite) TestUpdateOrder_RateOverrideMapsToBadRequest() {
	userID := uuid.NewString()
	orderID := uuid.NewString()
	snapshot := decimal.NewFromInt(25)

	reqBody := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{Name: "Sambal Set", Quantity: 1, BasePrice: decimal.NewFromInt(50)},
		},
		CommissionRateSnapshot: &snapshot,
	}

	suite.mockOrderService.On("UpdateOrder",
		mock.AnythingOfType("*context.valueCtx"),
		orderID,
		mock.AnythingOfType("dto.UpdateOrderRequest"),
		userID,
	).Return(nil, apperrors.ErrRateOverride).Once()

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodPut, "/api/v1/orders/"+orderID, token, reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestGetOrder_NotFound() {
	userID := uuid.NewString()
	orderID := uuid.NewString()

	suite.mockOrderService.On("GetOrderByID",
		mock.AnythingOfType("*context.valueCtx"),
		orderID,
		userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(userID, domain.RoleAdmin)
	w := suite.doJSON(http.MethodGet, "/api/v1/orders/"+orderID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestListOrders_NoToken() {
	w := suite.doJSON(http.MethodGet, "/api/v1/orders", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOrderService.AssertNotCalled(suite.T(), "ListOrders", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestOrderHandler(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
