package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// StatsCache stores the latest snapshot for a bounded time. Get reports
// ok=false on a miss.
type StatsCache interface {
	Get(ctx context.Context) (stats *domain.Stats, ok bool, err error)
	Set(ctx context.Context, stats *domain.Stats) error
}

type StatsService interface {
	Snapshot(ctx context.Context) (*domain.Stats, error)
}
