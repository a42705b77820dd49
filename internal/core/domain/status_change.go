package domain

import "time"

// StatusChange is an audit record written when staff change a request's status.
type StatusChange struct {
	RequestID int64
	From      TravelStatus
	To        TravelStatus
	ChangedBy int64
	ChangedAt time.Time
}
