package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

func sampleStats() *domain.Stats {
	return &domain.Stats{
		Total:    10,
		Pending:  3,
		Approved: 5,
		Rejected: 2,
		Modes: []domain.ModeCount{
			{TravelMode: "train", Count: 6},
			{TravelMode: "flight", Count: 4},
		},
		Recent: []domain.RecentRequest{
			{
				ID:            10,
				Username:      "alice",
				ProjectName:   "Apollo",
				Status:        "Pending",
				StartLocation: "Berlin",
				EndLocation:   "Munich",
				StartDate:     time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestIntent_Priority(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"Show me statistics", IntentStatistics},
		{"what is the total number of requests", IntentStatistics},
		{"stats please", IntentStatistics},
		{"how many pending requests?", IntentPending},
		{"waiting requests", IntentPending},
		{"pending requests overview", IntentPending},
		{"approved requests", IntentApproved},
		{"denied requests", IntentRejected},
		{"latest requests", IntentRecent},
		// "count" outranks "pending" because statistics is checked first
		{"count pending requests", IntentStatistics},
		{"travel mode breakdown", IntentModes},
		// "travel" outranks the overview rule
		{"status of travel requests", IntentModes},
		{"status of requests", IntentOverview},
		{"approval rate", IntentPercentages},
		{"HELP", IntentHelp},
		{"what can you do", IntentHelp},
		{"hi there", IntentGreeting},
		{"thank you!", IntentThanks},
		{"goodbye", IntentFarewell},
		// greeting words must stand alone
		{"this is nothing", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tc := range cases {
		if got := Intent(tc.msg); got != tc.want {
			t.Fatalf("Intent(%q) = %s, want %s", tc.msg, got, tc.want)
		}
	}
}

func TestRuleResponder_Statistics(t *testing.T) {
	got, err := NewRuleResponder().Respond(context.Background(), "show me statistics", sampleStats())
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	for _, want := range []string{
		"Total number of travel requests in the system: 10",
		"Pending: 3",
		"Approved: 5",
		"Rejected: 2",
		"30.0%",
		"50.0%",
		"20.0%",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("response missing %q:\n%s", want, got)
		}
	}
}

func TestRuleResponder_RecentAndModes(t *testing.T) {
	r := NewRuleResponder()

	recent, _ := r.Respond(context.Background(), "recent requests", sampleStats())
	if !strings.Contains(recent, "• Apollo (Pending) - alice: Berlin → Munich, 2030-06-01") {
		t.Fatalf("unexpected recent reply:\n%s", recent)
	}

	modes, _ := r.Respond(context.Background(), "transport", sampleStats())
	if !strings.Contains(modes, "• train: 6 requests") || !strings.Contains(modes, "• flight: 40.0%") {
		t.Fatalf("unexpected modes reply:\n%s", modes)
	}
}

func TestRuleResponder_StatusSectionHeaders(t *testing.T) {
	r := NewRuleResponder()
	cases := []struct {
		msg    string
		header string
	}{
		{"pending requests", "Recent pending requests:\n• Apollo (Pending)"},
		{"approved requests", "Recent approvals:\n• Apollo (Pending)"},
		{"rejected requests", "Recent rejections:\n• Apollo (Pending)"},
	}
	for _, tc := range cases {
		got, err := r.Respond(context.Background(), tc.msg, sampleStats())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.msg, err)
		}
		if !strings.Contains(got, tc.header) {
			t.Fatalf("%s: expected %q in reply:\n%s", tc.msg, tc.header, got)
		}
	}
}

func TestRuleResponder_ZeroTotal(t *testing.T) {
	r := NewRuleResponder()
	empty := &domain.Stats{}

	for _, msg := range []string{"stats", "pending requests", "travel", "status of requests", "percent", "recent requests"} {
		got, err := r.Respond(context.Background(), msg, empty)
		if err != nil {
			t.Fatalf("%q: %v", msg, err)
		}
		if strings.Contains(got, "NaN") || strings.Contains(got, "Inf") {
			t.Fatalf("%q: division leaked into reply:\n%s", msg, got)
		}
	}

	got, _ := r.Respond(context.Background(), "stats", empty)
	if !strings.Contains(got, "Pending: 0.0%") {
		t.Fatalf("expected zero percentages:\n%s", got)
	}
}

func TestRuleResponder_Fallbacks(t *testing.T) {
	r := NewRuleResponder()

	got, _ := r.Respond(context.Background(), "hello", sampleStats())
	if !strings.HasPrefix(got, "👋 Hello!") {
		t.Fatalf("unexpected greeting:\n%s", got)
	}

	got, _ = r.Respond(context.Background(), "qwerty", sampleStats())
	if !strings.Contains(got, "I'm not sure I understand") || !strings.Contains(got, "Total requests: 10") {
		t.Fatalf("unexpected default reply:\n%s", got)
	}

	got, _ = r.Respond(context.Background(), "qwerty", nil)
	if !strings.Contains(got, "Total requests: 0") {
		t.Fatalf("nil stats should render zeros:\n%s", got)
	}
}
