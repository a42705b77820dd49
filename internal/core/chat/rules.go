// Package chat holds the responders behind the chat endpoint: a rule table
// that formats canned answers from a statistics snapshot, and a generative
// responder that delegates to an external text model.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// Intent names, in the order the rule table tries them.
const (
	IntentStatistics  = "statistics"
	IntentPending     = "pending"
	IntentApproved    = "approved"
	IntentRejected    = "rejected"
	IntentRecent      = "recent"
	IntentModes       = "modes"
	IntentOverview    = "overview"
	IntentPercentages = "percentages"
	IntentHelp        = "help"
	IntentGreeting    = "greeting"
	IntentThanks      = "thanks"
	IntentFarewell    = "farewell"
	IntentUnknown     = "unknown"
)

type rule struct {
	intent  string
	pattern *regexp.Regexp
	render  func(*domain.Stats) string
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{IntentStatistics, regexp.MustCompile(`(total|count|number).*request|statistic|\bstats\b`), renderStatistics},
	{IntentPending, regexp.MustCompile(`(pending|waiting).*request`), renderPending},
	{IntentApproved, regexp.MustCompile(`(approved|accepted).*request`), renderApproved},
	{IntentRejected, regexp.MustCompile(`(rejected|denied).*request`), renderRejected},
	{IntentRecent, regexp.MustCompile(`(recent|latest|new).*request`), renderRecent},
	{IntentModes, regexp.MustCompile(`mode|transport|travel`), renderModes},
	{IntentOverview, regexp.MustCompile(`(status|overview|summary).*request`), renderOverview},
	{IntentPercentages, regexp.MustCompile(`percentage|percent|rate`), renderPercentages},
	{IntentHelp, regexp.MustCompile(`help|assist|what can you do`), func(*domain.Stats) string { return helpText }},
	{IntentGreeting, regexp.MustCompile(`\b(hello|hi|hey)\b`), func(*domain.Stats) string { return greetingText }},
	{IntentThanks, regexp.MustCompile(`thanks|thank you`), func(*domain.Stats) string { return thanksText }},
	{IntentFarewell, regexp.MustCompile(`\b(bye|goodbye)\b`), func(*domain.Stats) string { return farewellText }},
}

// Intent classifies message the same way RuleResponder does.
func Intent(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, r := range rules {
		if r.pattern.MatchString(msg) {
			return r.intent
		}
	}
	return IntentUnknown
}

// RuleResponder answers from a fixed pattern table. It never calls out and
// never fails.
type RuleResponder struct{}

func NewRuleResponder() *RuleResponder {
	return &RuleResponder{}
}

func (RuleResponder) Respond(_ context.Context, message string, stats *domain.Stats) (string, error) {
	if stats == nil {
		stats = &domain.Stats{}
	}
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, r := range rules {
		if r.pattern.MatchString(msg) {
			return strings.TrimSpace(r.render(stats)), nil
		}
	}
	return strings.TrimSpace(renderUnknown(stats)), nil
}

func pct(part, total int64) string {
	return fmt.Sprintf("%.1f%%", domain.Percent(part, total))
}

func recentText(s *domain.Stats) string {
	if len(s.Recent) == 0 {
		return "• No travel requests yet"
	}
	lines := make([]string, 0, len(s.Recent))
	for _, r := range s.Recent {
		lines = append(lines, fmt.Sprintf("• %s (%s) - %s: %s → %s, %s",
			r.ProjectName, r.Status, r.Username, r.StartLocation, r.EndLocation,
			r.StartDate.Format(domain.DateLayout)))
	}
	return strings.Join(lines, "\n")
}

func modesText(s *domain.Stats) string {
	if len(s.Modes) == 0 {
		return "• No travel requests yet"
	}
	lines := make([]string, 0, len(s.Modes))
	for _, m := range s.Modes {
		lines = append(lines, fmt.Sprintf("• %s: %d requests", m.TravelMode, m.Count))
	}
	return strings.Join(lines, "\n")
}

func renderStatistics(s *domain.Stats) string {
	return fmt.Sprintf(`📊 Travel Request Statistics

Total number of travel requests in the system: %d

Breakdown:
• Pending: %d
• Approved: %d
• Rejected: %d

Percentage Distribution:
• Pending: %s
• Approved: %s
• Rejected: %s`,
		s.Total, s.Pending, s.Approved, s.Rejected,
		pct(s.Pending, s.Total), pct(s.Approved, s.Total), pct(s.Rejected, s.Total))
}

func renderPending(s *domain.Stats) string {
	return fmt.Sprintf(`⏳ Pending Requests Status

Currently, there are %d pending travel requests awaiting review.
Percentage of total: %s

Recent pending requests:
%s`, s.Pending, pct(s.Pending, s.Total), recentText(s))
}

func renderApproved(s *domain.Stats) string {
	return fmt.Sprintf(`✅ Approved Requests Summary

Total approved requests: %d
Percentage of total: %s

Recent approvals:
%s`, s.Approved, pct(s.Approved, s.Total), recentText(s))
}

func renderRejected(s *domain.Stats) string {
	return fmt.Sprintf(`❌ Rejected Requests Overview

Total rejected requests: %d
Percentage of total: %s

Recent rejections:
%s`, s.Rejected, pct(s.Rejected, s.Total), recentText(s))
}

func renderRecent(s *domain.Stats) string {
	return fmt.Sprintf(`📋 Recent Travel Requests

Here are the most recent travel requests:

%s

Status Distribution:
• Pending: %d
• Approved: %d
• Rejected: %d

Would you like to see more details about any specific request?`,
		recentText(s), s.Pending, s.Approved, s.Rejected)
}

func renderModes(s *domain.Stats) string {
	var shares []string
	for _, m := range s.Modes {
		shares = append(shares, fmt.Sprintf("• %s: %s", m.TravelMode, pct(m.Count, s.Total)))
	}
	if len(shares) == 0 {
		shares = append(shares, "• No travel requests yet")
	}
	return fmt.Sprintf(`🚗 Travel Mode Distribution

Current distribution of travel requests by mode:

%s

Total requests: %d

Breakdown by percentage:
%s`, modesText(s), s.Total, strings.Join(shares, "\n"))
}

func renderOverview(s *domain.Stats) string {
	return fmt.Sprintf(`📈 Travel Request Dashboard

Current Status Overview:

Total Requests: %d
• Pending: %d (%s)
• Approved: %d (%s)
• Rejected: %d (%s)

Recent Activity:
%s

Travel Mode Distribution:
%s`,
		s.Total,
		s.Pending, pct(s.Pending, s.Total),
		s.Approved, pct(s.Approved, s.Total),
		s.Rejected, pct(s.Rejected, s.Total),
		recentText(s), modesText(s))
}

func renderPercentages(s *domain.Stats) string {
	return fmt.Sprintf(`📊 Request Status Percentages

Current distribution of travel requests:

• Pending: %d (%s)
• Approved: %d (%s)
• Rejected: %d (%s)

Total Requests: %d

Recent Activity:
%s`,
		s.Pending, pct(s.Pending, s.Total),
		s.Approved, pct(s.Approved, s.Total),
		s.Rejected, pct(s.Rejected, s.Total),
		s.Total, recentText(s))
}

func renderUnknown(s *domain.Stats) string {
	return fmt.Sprintf(`🤔 I'm not sure I understand. Here's what I can help you with:

📊 Statistics
• Total requests: %d
• Pending: %d
• Approved: %d
• Rejected: %d

Try asking about:
• Total requests and statistics
• Pending/approved/rejected requests
• Recent travel requests
• Travel mode distribution
• Request status overview
• Request percentages

Type 'help' for a complete list of available commands.`,
		s.Total, s.Pending, s.Approved, s.Rejected)
}

const helpText = `👋 Welcome to Travel Request Assistant!

I can help you with the following information:

📊 Statistics
• Total number of requests
• Pending/approved/rejected counts
• Approval/rejection rates

📋 Recent Activity
• Latest travel requests

🚗 Travel Details
• Travel mode distribution

💡 Tips:
• Ask for 'status of requests' to get a complete overview
• Use 'recent requests' to see latest requests
• Type 'help' anytime to see this menu`

const greetingText = `👋 Hello! I'm your Travel Request Assistant.

I can help you with information about travel requests, including:
• Total requests and statistics
• Pending/approved/rejected requests
• Recent travel requests
• Travel mode distribution

Type 'help' to see all available commands.`

const (
	thanksText   = "You're welcome! Let me know if you need anything else."
	farewellText = "Goodbye! Have a great day!"
)
