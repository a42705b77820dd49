package domain

import "time"

// ModeCount is the number of requests using one travel mode.
type ModeCount struct {
	TravelMode string `json:"travel_mode"`
	Count      int64  `json:"count"`
}

// RecentRequest is the one-line view of a recently created request.
type RecentRequest struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	ProjectName   string    `json:"project_name"`
	Status        string    `json:"status"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	StartDate     time.Time `json:"start_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats is an aggregate snapshot over all travel requests. It may be served
// from cache, so it can lag behind writes by up to the cache TTL.
type Stats struct {
	Total       int64           `json:"total"`
	Pending     int64           `json:"pending"`
	Approved    int64           `json:"approved"`
	Rejected    int64           `json:"rejected"`
	Modes       []ModeCount     `json:"modes"`
	Recent      []RecentRequest `json:"recent"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func (s *Stats) PendingPercent() float64  { return Percent(s.Pending, s.Total) }
func (s *Stats) ApprovedPercent() float64 { return Percent(s.Approved, s.Total) }
func (s *Stats) RejectedPercent() float64 { return Percent(s.Rejected, s.Total) }
