package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generateFn(ctx, prompt)
}

func TestAIResponder_ReturnsTextVerbatim(t *testing.T) {
	var seen string
	gen := &stubGenerator{generateFn: func(_ context.Context, prompt string) (string, error) {
		seen = prompt
		return "There are 3 pending requests.", nil
	}}

	got, err := NewAIResponder(gen, time.Second, zerolog.Nop()).Respond(context.Background(), "how many pending?", sampleStats())
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got != "There are 3 pending requests." {
		t.Fatalf("unexpected reply %q", got)
	}
	for _, want := range []string{"Total requests: 10", "Pending: 3 (30.0%)", "• train: 6 requests", "Question: how many pending?"} {
		if !strings.Contains(seen, want) {
			t.Fatalf("prompt missing %q:\n%s", want, seen)
		}
	}
}

func TestAIResponder_FailureIsGenerationFailed(t *testing.T) {
	gen := &stubGenerator{generateFn: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded for project 1234")
	}}

	_, err := NewAIResponder(gen, time.Second, zerolog.Nop()).Respond(context.Background(), "hi", sampleStats())
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestAIResponder_EmptyText(t *testing.T) {
	gen := &stubGenerator{generateFn: func(context.Context, string) (string, error) { return "  ", nil }}

	_, err := NewAIResponder(gen, time.Second, zerolog.Nop()).Respond(context.Background(), "hi", nil)
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestAIResponder_Timeout(t *testing.T) {
	gen := &stubGenerator{generateFn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}

	start := time.Now()
	_, err := NewAIResponder(gen, 20*time.Millisecond, zerolog.Nop()).Respond(context.Background(), "hi", nil)
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not honoured")
	}
}
