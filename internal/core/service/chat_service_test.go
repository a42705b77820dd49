package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type stubLimiter struct {
	allowFn func(ctx context.Context) (bool, error)
	calls   int
}

func (l *stubLimiter) Allow(ctx context.Context) (bool, error) {
	l.calls++
	return l.allowFn(ctx)
}

type stubResponder struct {
	respondFn func(ctx context.Context, message string, stats *domain.Stats) (string, error)
}

func (r *stubResponder) Respond(ctx context.Context, message string, stats *domain.Stats) (string, error) {
	return r.respondFn(ctx, message, stats)
}

func allowAll() *stubLimiter {
	return &stubLimiter{allowFn: func(context.Context) (bool, error) { return true, nil }}
}

func echoResponder() *stubResponder {
	return &stubResponder{respondFn: func(_ context.Context, msg string, stats *domain.Stats) (string, error) {
		if stats == nil {
			return "", errors.New("missing stats")
		}
		return "echo: " + msg, nil
	}}
}

func newTestChatService(limiter *stubLimiter, responder *stubResponder, repo *stubStatsRepo) *ChatService {
	stats := NewStatsService(repo, nil, zerolog.Nop())
	return NewChatService(limiter, stats, responder, domain.ChatStrategyRules, zerolog.Nop())
}

func TestChatService_Reply_Success(t *testing.T) {
	svc := newTestChatService(allowAll(), echoResponder(), &stubStatsRepo{})

	got, err := svc.Reply(context.Background(), "how many requests?")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if got != "echo: how many requests?" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestChatService_Reply_RateLimitedBeforeValidation(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context) (bool, error) { return false, nil }}
	repo := &stubStatsRepo{}
	svc := newTestChatService(limiter, echoResponder(), repo)

	if _, err := svc.Reply(context.Background(), ""); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("stats must not be computed when rate limited")
	}
}

func TestChatService_Reply_MessageRequired(t *testing.T) {
	limiter := allowAll()
	svc := newTestChatService(limiter, echoResponder(), &stubStatsRepo{})

	if _, err := svc.Reply(context.Background(), "   "); !errors.Is(err, domain.ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
	// a rejected message still consumes a slot
	if limiter.calls != 1 {
		t.Fatalf("expected limiter consulted once, got %d", limiter.calls)
	}
}

func TestChatService_Reply_LimiterErrorFailsOpen(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context) (bool, error) { return false, errors.New("redis down") }}
	svc := newTestChatService(limiter, echoResponder(), &stubStatsRepo{})

	if _, err := svc.Reply(context.Background(), "hi"); err != nil {
		t.Fatalf("expected success when limiter fails, got %v", err)
	}
}

func TestChatService_Reply_ResponderError(t *testing.T) {
	responder := &stubResponder{respondFn: func(context.Context, string, *domain.Stats) (string, error) {
		return "", domain.ErrGenerationFailed
	}}
	svc := newTestChatService(allowAll(), responder, &stubStatsRepo{})

	if _, err := svc.Reply(context.Background(), "hi"); !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestChatService_Reply_StatsError(t *testing.T) {
	svc := newTestChatService(allowAll(), echoResponder(), &stubStatsRepo{err: errors.New("db down")})

	if _, err := svc.Reply(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error")
	}
}
