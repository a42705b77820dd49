package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/api/metrics"
	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// TextGenerator is the external generative-text service: a prompt goes in,
// generated text comes out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIResponder builds a prompt from the snapshot and returns the model's text
// verbatim. Upstream failures are logged and surfaced as
// domain.ErrGenerationFailed so no provider detail reaches the client.
type AIResponder struct {
	gen     TextGenerator
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAIResponder(gen TextGenerator, timeout time.Duration, logger zerolog.Logger) *AIResponder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIResponder{gen: gen, timeout: timeout, logger: logger}
}

func (r *AIResponder) Respond(ctx context.Context, message string, stats *domain.Stats) (string, error) {
	if stats == nil {
		stats = &domain.Stats{}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.gen.Generate(ctx, BuildPrompt(message, stats))
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty response")
	}
	if err != nil {
		metrics.GenAIRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		r.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("generative model call failed")
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	metrics.GenAIRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return text, nil
}

// BuildPrompt embeds the snapshot and the staff member's question.
func BuildPrompt(message string, s *domain.Stats) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for a corporate travel desk. ")
	b.WriteString("Answer the staff member's question using only the travel request data below. ")
	b.WriteString("Be concise and use bullet points where it helps.\n\n")

	fmt.Fprintf(&b, "Total requests: %d\n", s.Total)
	fmt.Fprintf(&b, "Pending: %d (%s)\n", s.Pending, pct(s.Pending, s.Total))
	fmt.Fprintf(&b, "Approved: %d (%s)\n", s.Approved, pct(s.Approved, s.Total))
	fmt.Fprintf(&b, "Rejected: %d (%s)\n\n", s.Rejected, pct(s.Rejected, s.Total))
	b.WriteString("Travel modes:\n")
	b.WriteString(modesText(s))
	b.WriteString("\n\nMost recent requests:\n")
	b.WriteString(recentText(s))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(strings.TrimSpace(message))
	return b.String()
}
