package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/api/metrics"
	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// ChatService answers staff questions about travel requests through a
// pluggable responder, behind a process-wide rate limit.
type ChatService struct {
	limiter   ports.RateLimiter
	stats     ports.StatsService
	responder ports.ChatResponder
	strategy  string
	logger    zerolog.Logger
}

func NewChatService(
	limiter ports.RateLimiter,
	stats ports.StatsService,
	responder ports.ChatResponder,
	strategy string,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		limiter:   limiter,
		stats:     stats,
		responder: responder,
		strategy:  strategy,
		logger:    logger,
	}
}

// Reply checks the rate limit first, then the message, so an over-limit caller
// is told to slow down even when the payload is empty.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx)
		if err != nil {
			// fail open: a broken limiter must not take the assistant down
			s.logger.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			s.observe("rate_limited")
			return "", domain.ErrRateLimited
		}
	}

	if strings.TrimSpace(message) == "" {
		s.observe("bad_request")
		return "", domain.ErrMessageRequired
	}

	stats, err := s.stats.Snapshot(ctx)
	if err != nil {
		s.observe("error")
		return "", err
	}

	reply, err := s.responder.Respond(ctx, message, stats)
	if err != nil {
		s.observe("error")
		if errors.Is(err, domain.ErrGenerationFailed) {
			s.logger.Error().Err(err).Msg("chat generation failed")
		}
		return "", err
	}

	s.observe("ok")
	return reply, nil
}

func (s *ChatService) observe(result string) {
	metrics.ChatRequestsTotal.WithLabelValues(s.strategy, result).Inc()
}
