package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookups return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
