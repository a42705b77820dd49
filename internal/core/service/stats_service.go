package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/api/metrics"
	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// recentLimit is the number of latest requests included in a snapshot.
const recentLimit = 3

// StatsService serves aggregate snapshots, read through a cache. The cache is
// only invalidated by expiry, so a snapshot may be stale for up to its TTL.
type StatsService struct {
	repo   ports.StatsRepository
	cache  ports.StatsCache
	logger zerolog.Logger
	now    func() time.Time
}

func NewStatsService(repo ports.StatsRepository, cache ports.StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Snapshot returns cached statistics when available, otherwise aggregates from
// storage and caches the result. Cache failures never fail the call.
func (s *StatsService) Snapshot(ctx context.Context) (*domain.Stats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.StatsCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		case ok:
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	stats, err := s.repo.Aggregate(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	stats.GeneratedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}
