package repositories

import (
	"context"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
)

// UserListFilter narrows and pages user listings.
type UserListFilter struct {
	Search string // matches name or username, case-insensitive
	Role   domain.UserRole
	Limit  int
	Offset int
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username (case-insensitive).
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUsers retrieves a filtered, paginated list of users plus the total
	// count matching the filter.
	FindUsers(ctx context.Context, filter UserListFilter) ([]domain.User, int, error)

	// FindSalesPersons retrieves every sales_person account.
	FindSalesPersons(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details, including an appended
	// commission history entry when the rate changed.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes a user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes the user row permanently. User deletion is a hard
	// delete; campaigns keep their sales_person_id as rate lineage.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
