package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type stubStatsService struct {
	stats *domain.Stats
	err   error
}

func (s *stubStatsService) Snapshot(context.Context) (*domain.Stats, error) {
	return s.stats, s.err
}

type stubChatService struct {
	replyFn func(ctx context.Context, message string) (string, error)
}

func (s *stubChatService) Reply(ctx context.Context, message string) (string, error) {
	return s.replyFn(ctx, message)
}

func TestStatsHandler_Get(t *testing.T) {
	e := newTestEcho()
	stats := &domain.Stats{
		Total:    3,
		Pending:  1,
		Approved: 2,
		Modes:    []domain.ModeCount{{TravelMode: "flight", Count: 1}, {TravelMode: "train", Count: 2}},
		Recent: []domain.RecentRequest{{
			ID: 3, Username: "alice", ProjectName: "Apollo", Status: "Pending",
			StartLocation: "Berlin", EndLocation: "Munich",
			StartDate: time.Date(2099, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	handler := NewStatsHandler(&stubStatsService{stats: stats})

	c, rec := jsonRequest(e, http.MethodGet, "/stats/", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	if resp["total"] != float64(3) || resp["approved_percent"] != 66.7 || resp["pending_percent"] != 33.3 {
		t.Fatalf("unexpected response: %v", resp)
	}
	recent := resp["recent"].([]any)
	if len(recent) != 1 || recent[0].(map[string]any)["start_date"] != "2099-03-01" {
		t.Fatalf("unexpected recent: %v", recent)
	}
}

func TestStatsHandler_Get_Error(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("db down")
	handler := NewStatsHandler(&stubStatsService{err: boom})

	c, _ := jsonRequest(e, http.MethodGet, "/stats/", "")
	if err := handler.Get(c); !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestChatHandler_Chat(t *testing.T) {
	e := newTestEcho()
	handler := NewChatHandler(&stubChatService{
		replyFn: func(_ context.Context, message string) (string, error) {
			if message != "how many pending requests?" {
				t.Fatalf("unexpected message %q", message)
			}
			return "3 pending", nil
		},
	}, zerolog.Nop())

	c, rec := jsonRequest(e, http.MethodPost, "/chat/", `{"message":"how many pending requests?"}`)
	if err := handler.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["response"] != "3 pending" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestChatHandler_MalformedBodyIsEmptyMessage(t *testing.T) {
	e := newTestEcho()
	var got *string
	var logs bytes.Buffer
	handler := NewChatHandler(&stubChatService{
		replyFn: func(_ context.Context, message string) (string, error) {
			got = &message
			return "", domain.ErrMessageRequired
		},
	}, zerolog.New(&logs).Level(zerolog.DebugLevel))

	c, _ := jsonRequest(e, http.MethodPost, "/chat/", `{"message":`)
	if err := handler.Chat(c); !errors.Is(err, domain.ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
	if got == nil || *got != "" {
		t.Fatalf("service should see an empty message, got %v", got)
	}
	if !strings.Contains(logs.String(), `"level":"debug"`) || !strings.Contains(logs.String(), "treating as empty message") {
		t.Fatalf("bind failure should be logged at debug, got %q", logs.String())
	}
}

func TestChatHandler_RateLimited(t *testing.T) {
	e := newTestEcho()
	handler := NewChatHandler(&stubChatService{
		replyFn: func(context.Context, string) (string, error) {
			return "", domain.ErrRateLimited
		},
	}, zerolog.Nop())

	c, _ := jsonRequest(e, http.MethodPost, "/chat/", `{"message":"hi"}`)
	if err := handler.Chat(c); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
