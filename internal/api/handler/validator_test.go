package handler

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2030, 5, 10, 15, 0, 0, 0, time.UTC) }

	req := createTravelRequestRequest{
		ProjectName:   "Apollo",
		StartDate:     "2030-05-10",
		TravelMode:    "car",
		BookingMode:   "self",
		StartLocation: "Berlin",
		EndLocation:   "Berlin",
	}

	err := v.Validate(&req)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}

	want := map[string]string{
		"travel_purpose":      domain.MsgRequired,
		"start_date":          domain.MsgFutureDate,
		"travel_mode":         `"car" is not a valid choice.`,
		domain.NonFieldErrors: domain.MsgSameLocations,
	}
	for field, msg := range want {
		if got := verr.Fields[field]; len(got) != 1 || got[0] != msg {
			t.Fatalf("%s: expected %q, got %v", field, msg, got)
		}
	}
	if _, ok := verr.Fields["booking_mode"]; ok {
		t.Fatalf("booking_mode should be valid: %v", verr.Fields)
	}
}

func TestValidator_FutureDate(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2030, 5, 10, 23, 59, 0, 0, time.UTC) }

	tests := []struct {
		date string
		ok   bool
	}{
		{"2030-05-11", true},
		{"2030-05-10", false},
		{"2029-12-31", false},
	}
	for _, tt := range tests {
		req := createTravelRequestRequest{
			ProjectName: "A", TravelPurpose: "p", StartDate: tt.date,
			TravelMode: "train", BookingMode: "travelDesk",
			StartLocation: "X", EndLocation: "Y",
		}
		err := v.Validate(&req)
		if (err == nil) != tt.ok {
			t.Fatalf("%s: expected ok=%v, got %v", tt.date, tt.ok, err)
		}
	}
}

func TestValidator_BadDateFormat(t *testing.T) {
	v := NewValidator()
	req := createTravelRequestRequest{
		ProjectName: "A", TravelPurpose: "p", StartDate: "01/02/2099",
		TravelMode: "train", BookingMode: "self",
		StartLocation: "X", EndLocation: "Y",
	}

	var verr *domain.ValidationError
	if !errors.As(v.Validate(&req), &verr) {
		t.Fatalf("expected validation error")
	}
	if got := verr.Fields["start_date"]; len(got) != 1 || got[0] != "Date has wrong format. Use one of these formats instead: YYYY-MM-DD." {
		t.Fatalf("unexpected start_date errors: %v", got)
	}
}

func TestValidator_UpdateIgnoresAbsentFields(t *testing.T) {
	v := NewValidator()
	status := "Approved"
	if err := v.Validate(&updateTravelRequestRequest{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_RegisterUsernameLength(t *testing.T) {
	v := NewValidator()

	req := registerRequest{Username: strings.Repeat("u", 51), Email: "a@example.com", Password: "pw"}
	var verr *domain.ValidationError
	if !errors.As(v.Validate(&req), &verr) {
		t.Fatalf("51-character username should be rejected")
	}
	if got := verr.Fields["username"]; len(got) != 1 || got[0] != "Ensure this field has no more than 50 characters." {
		t.Fatalf("unexpected username errors: %v", got)
	}

	req.Username = strings.Repeat("u", 50)
	if err := v.Validate(&req); err != nil {
		t.Fatalf("50-character username should pass: %v", err)
	}
}
