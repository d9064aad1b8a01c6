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
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
	"github.com/google/uuid"
)

// orderServiceImpl implements the OrderSvcFacade interface
type orderServiceImpl struct {
	BaseService
	orderRepo    portsrepo.OrderRepositoryFacade
	campaignRepo portsrepo.CampaignReader
	userRepo     portsrepo.UserReader
}

// NewOrderServiceImpl creates a new order service
func NewOrderServiceImpl(orderRepo portsrepo.OrderRepositoryFacade, campaignRepo portsrepo.CampaignReader, userRepo portsrepo.UserReader) portssvc.OrderSvcFacade {
	return &orderServiceImpl{
		orderRepo:    orderRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
	}
}

// Ensure orderServiceImpl implements the OrderSvcFacade interface
var _ portssvc.OrderSvcFacade = (*orderServiceImpl)(nil)

func toDomainItems(reqItems []dto.OrderItemRequest) []domain.OrderItem {
	items := make([]domain.OrderItem, len(reqItems))
	for i, it := range reqItems {
		items[i] = domain.OrderItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			BasePrice: it.BasePrice,
		}
	}
	return items
}

// requireCampaignAccess resolves the requester and enforces that sales
// persons only touch orders under campaigns they own.
func (s *orderServiceImpl) requireCampaignAccess(ctx context.Context, campaign *domain.Campaign, requestingUserID string) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to resolve requesting user: %w", err)
	}
	if requester.Role == domain.RoleSalesPerson && campaign.SalesPersonID != requestingUserID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if err := s.requireCampaignAccess(ctx, campaign, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	if !campaign.IsActiveAt(now) {
		return nil, apperrors.ErrInactiveCampaign
	}

	items, err := commission.NormalizeItems(toDomainItems(req.Items))
	if err != nil {
		return nil, err
	}

	// The snapshot freezes the campaign owner's current rate onto the order.
	owner, err := s.userRepo.FindUserByID(ctx, campaign.SalesPersonID)
	if err != nil {
		return nil, fmt.Errorf("campaign owner not found: %w", err)
	}
	snapshot, err := commission.NewSnapshot(commission.ComputeOrderTotal(items), owner.CommissionRate)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		OrderID:    uuid.NewString(),
		CampaignID: campaign.CampaignID,
		Items:      items,
		Commission: snapshot,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save new order", slog.String("campaign_id", campaign.CampaignID))
		return nil, err
	}

	s.LogInfo(ctx, "Order created",
		slog.String("order_id", order.OrderID),
		slog.String("campaign_id", order.CampaignID),
		slog.String("rate_snapshot", snapshot.RateSnapshot.String()))
	return &order, nil
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, orderID string, requestingUserID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, order.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order's campaign: %w", err)
	}
	if err := s.requireCampaignAccess(ctx, campaign, requestingUserID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, params dto.ListOrdersParams, requestingUserID string) ([]domain.Order, int, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve requesting user: %w", err)
	}

	filter := portsrepo.OrderListFilter{
		CampaignID: params.CampaignID,
		ItemSearch: params.ItemSearch,
		SortBy:     portsrepo.OrderSortField(params.SortBy),
		SortAsc:    params.SortAsc,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	if requester.Role == domain.RoleSalesPerson {
		own, err := s.campaignRepo.FindCampaignsBySalesPerson(ctx, requestingUserID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load own campaigns: %w", err)
		}
		ownIDs := make([]string, len(own))
		ownSet := make(map[string]bool, len(own))
		for i, c := range own {
			ownIDs[i] = c.CampaignID
			ownSet[c.CampaignID] = true
		}
		if filter.CampaignID != "" && !ownSet[filter.CampaignID] {
			return nil, 0, apperrors.ErrForbidden
		}
		// A non-nil empty set matches nothing, which is exactly right for a
		// sales person with no campaigns.
		filter.CampaignIDs = ownIDs
	}

	orders, total, err := s.orderRepo.FindOrders(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *orderServiceImpl) ListOrdersByCampaign(ctx context.Context, campaignID string, requestingUserID string) ([]domain.Order, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCampaignAccess(ctx, campaign, requestingUserID); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindOrdersByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for campaign: %w", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, requestingUserID string) (*domain.Order, error) {
	if req.CommissionRateSnapshot != nil || req.CommissionAmount != nil {
		return nil, fmt.Errorf("order edits cannot supply commission values: %w", apperrors.ErrRateOverride)
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, order.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order's campaign: %w", err)
	}
	if err := s.requireCampaignAccess(ctx, campaign, requestingUserID); err != nil {
		return nil, err
	}

	items, err := commission.NormalizeItems(toDomainItems(req.Items))
	if err != nil {
		return nil, err
	}

	// The commission is recomputed against the frozen snapshot rate, not the
	// owner's current rate.
	order.Items = items
	order.Commission = commission.RecomputeWithSnapshot(items, order.Commission)
	order.LastUpdatedAt = time.Now()
	order.LastUpdatedBy = requestingUserID

	if err := s.orderRepo.UpdateOrderItems(ctx, *order); err != nil {
		s.LogError(ctx, err, "Failed to update order", slog.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) DeleteOrder(ctx context.Context, orderID string, requestingUserID string) error {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, order.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to load order's campaign: %w", err)
	}
	if err := s.requireCampaignAccess(ctx, campaign, requestingUserID); err != nil {
		return err
	}

	if err := s.orderRepo.MarkOrderDeleted(ctx, orderID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete order", slog.String("order_id", orderID))
		return err
	}
	s.LogInfo(ctx, "Order deleted",
		slog.String("order_id", orderID),
		slog.String("deleted_by", requestingUserID))
	return nil
}
