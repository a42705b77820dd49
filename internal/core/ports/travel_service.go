package ports

import (
	"context"
	"time"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// Actor is the authenticated caller of a travel-request operation.
type Actor struct {
	UserID  int64
	IsStaff bool
}

// CreateTravelRequestInput carries a validated creation payload.
type CreateTravelRequestInput struct {
	ProjectName   string
	TravelPurpose string
	StartDate     time.Time
	TravelMode    string
	BookingMode   string
	StartLocation string
	EndLocation   string
}

// UpdateTravelRequestInput carries a partial update; nil fields are left as is.
type UpdateTravelRequestInput struct {
	ProjectName   *string
	TravelPurpose *string
	StartDate     *time.Time
	TravelMode    *string
	BookingMode   *string
	StartLocation *string
	EndLocation   *string
	Status        *string
}

type TravelService interface {
	List(ctx context.Context, actor Actor) ([]domain.TravelRequest, error)
	Create(ctx context.Context, actor Actor, input CreateTravelRequestInput) (*domain.TravelRequest, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.TravelRequest, error)
	Update(ctx context.Context, actor Actor, id int64, input UpdateTravelRequestInput) (*domain.TravelRequest, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	History(ctx context.Context, id int64) ([]domain.StatusChange, error)
}
