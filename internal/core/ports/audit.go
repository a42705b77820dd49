package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// StatusEventRepository persists the status audit trail.
type StatusEventRepository interface {
	Insert(ctx context.Context, change *domain.StatusChange) error
	ListByRequest(ctx context.Context, requestID int64) ([]domain.StatusChange, error)
}

// StatusRecorder accepts status changes for asynchronous persistence.
type StatusRecorder interface {
	Enqueue(change domain.StatusChange)
}
