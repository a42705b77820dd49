package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// TravelRequestRepository defines persistence operations for travel requests.
// An ownerID of 0 disables the owner filter (staff visibility); any other value
// scopes the query to that user's requests.
type TravelRequestRepository interface {
	Create(ctx context.Context, tr *domain.TravelRequest) error
	FindByID(ctx context.Context, id, ownerID int64) (*domain.TravelRequest, error)
	List(ctx context.Context, ownerID int64) ([]domain.TravelRequest, error)
	Update(ctx context.Context, tr *domain.TravelRequest) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// StatsRepository computes aggregate statistics straight from storage.
type StatsRepository interface {
	Aggregate(ctx context.Context, recentLimit int) (*domain.Stats, error)
}
