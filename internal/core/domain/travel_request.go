package domain

import (
	"errors"
	"time"
)

// DateLayout is the wire and storage format of a travel start date.
const DateLayout = "2006-01-02"

var (
	ErrTravelRequestNotFound = errors.New("travel request not found")
	ErrUpdateForbidden       = errors.New("only admins can update travel requests")
)

// TravelStatus is the review state of a travel request. Any status may be set
// by staff at any time; there is no transition graph.
type TravelStatus string

const (
	StatusPending  TravelStatus = "Pending"
	StatusApproved TravelStatus = "Approved"
	StatusRejected TravelStatus = "Rejected"
)

// Valid reports whether s is one of the known statuses.
func (s TravelStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type TravelMode string

const (
	ModeTrain  TravelMode = "train"
	ModeFlight TravelMode = "flight"
)

type BookingMode string

const (
	BookingSelf       BookingMode = "self"
	BookingTravelDesk BookingMode = "travelDesk"
)

// TravelRequest is a user's request to travel, reviewed by staff.
type TravelRequest struct {
	ID            int64
	UserID        int64
	Username      string // owner's username, read-only
	ProjectName   string
	TravelPurpose string
	StartDate     time.Time
	TravelMode    TravelMode
	BookingMode   BookingMode
	StartLocation string
	EndLocation   string
	Status        TravelStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CheckRoute enforces that a trip goes somewhere.
func (t *TravelRequest) CheckRoute() error {
	if t.StartLocation != "" && t.StartLocation == t.EndLocation {
		verr := NewValidationError()
		verr.Add(NonFieldErrors, MsgSameLocations)
		return verr
	}
	return nil
}
