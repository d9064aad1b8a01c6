package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// userServiceImpl implements the UserSvcFacade interface
type userServiceImpl struct {
	BaseService
	userRepo      portsrepo.UserRepositoryFacade
	campaignRepo  portsrepo.CampaignReader
	reportingRepo portsrepo.ReportingRepository
}

// NewUserServiceImpl creates a new user service
func NewUserServiceImpl(userRepo portsrepo.UserRepositoryFacade, campaignRepo portsrepo.CampaignReader, reportingRepo portsrepo.ReportingRepository) portssvc.UserSvcFacade {
	return &userServiceImpl{
		userRepo:      userRepo,
		campaignRepo:  campaignRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure userServiceImpl implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userServiceImpl)(nil)

func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	rate := decimal.Zero
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}
	if err := commission.ValidateRateForRole(req.Role, rate); err != nil {
		s.LogError(ctx, err, "Rejected commission rate on user create",
			slog.String("role", string(req.Role)),
			slog.String("rate", rate.String()))
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Username:       strings.ToLower(req.Username),
		PasswordHash:   passwordHash,
		Name:           req.Name,
		Role:           req.Role,
		CommissionRate: rate,
		// The initial rate seeds the history so every later change has a
		// predecessor to diff against.
		CommissionHistory: []domain.RateChange{
			{Rate: rate, ChangedAt: now, ChangedBy: creatorUserID},
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("username", user.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, int, error) {
	filter := portsrepo.UserListFilter{
		Search: params.Search,
		Role:   domain.UserRole(params.Role),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	users, total, err := s.userRepo.FindUsers(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userServiceImpl) ListSalesPersons(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindSalesPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales persons: %w", err)
	}
	return users, nil
}

func (s *userServiceImpl) GetUserImpact(ctx context.Context, userID string) (*dto.UserImpactResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepo.FindCampaignsBySalesPerson(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns for impact report: %w", err)
	}
	figures, err := s.reportingRepo.FindLiveOrderFiguresForSalesPerson(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order figures for impact report: %w", err)
	}

	impact := &dto.UserImpactResponse{
		UserID:          user.UserID,
		Name:            user.Name,
		CampaignCount:   len(campaigns),
		OrderCount:      len(figures),
		TotalSales:      decimal.Zero,
		TotalCommission: decimal.Zero,
	}
	for _, f := range figures {
		impact.TotalSales = impact.TotalSales.Add(f.Total)
		impact.TotalCommission = impact.TotalCommission.Add(f.Commission)
	}
	return impact, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Username != nil {
		user.Username = strings.ToLower(*req.Username)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	newRate := user.CommissionRate
	if req.CommissionRate != nil {
		newRate = *req.CommissionRate
	}
	if err := commission.ValidateRateForRole(user.Role, newRate); err != nil {
		s.LogError(ctx, err, "Rejected commission rate on user update",
			slog.String("user_id", userID),
			slog.String("role", string(user.Role)),
			slog.String("rate", newRate.String()))
		return nil, err
	}

	// Append to the rate history only when the effective rate actually moved.
	if !newRate.Equal(user.CommissionRate) {
		user.CommissionRate = newRate
		user.CommissionHistory = append(user.CommissionHistory, domain.RateChange{
			Rate:      newRate,
			ChangedAt: now,
			ChangedBy: requestingUserID,
		})
		s.LogInfo(ctx, "Commission rate changed",
			slog.String("user_id", userID),
			slog.String("new_rate", newRate.String()))
	}

	user.LastUpdatedAt = now
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userServiceImpl) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return apperrors.ErrSelfDelete
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted",
		slog.String("user_id", userID),
		slog.String("deleted_by", requestingUserID))
	return nil
}

func (s *userServiceImpl) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
