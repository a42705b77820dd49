package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// ChatResponder turns a question and a stats snapshot into an answer.
// Implementations are interchangeable strategies behind the chat endpoint.
type ChatResponder interface {
	Respond(ctx context.Context, message string, stats *domain.Stats) (string, error)
}

// RateLimiter admits or rejects one more call in the current window.
type RateLimiter interface {
	Allow(ctx context.Context) (bool, error)
}

type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}
