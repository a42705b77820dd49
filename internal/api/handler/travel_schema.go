package handler

import "time"

// --- Request / Response types ---

type createTravelRequestRequest struct {
	ProjectName   string `json:"project_name"   validate:"required,max=255"`
	TravelPurpose string `json:"travel_purpose" validate:"required"`
	StartDate     string `json:"start_date"     validate:"required,datetime=2006-01-02,future_date"`
	TravelMode    string `json:"travel_mode"    validate:"required,oneof=train flight"`
	BookingMode   string `json:"booking_mode"   validate:"required,oneof=self travelDesk"`
	StartLocation string `json:"start_location" validate:"required,max=255"`
	EndLocation   string `json:"end_location"   validate:"required,max=255,nefield=StartLocation"`
}

// updateTravelRequestRequest serves both PUT and PATCH; absent fields are
// left unchanged.
type updateTravelRequestRequest struct {
	ProjectName   *string `json:"project_name"   validate:"omitempty,max=255"`
	TravelPurpose *string `json:"travel_purpose"`
	StartDate     *string `json:"start_date"     validate:"omitempty,datetime=2006-01-02"`
	TravelMode    *string `json:"travel_mode"    validate:"omitempty,oneof=train flight"`
	BookingMode   *string `json:"booking_mode"   validate:"omitempty,oneof=self travelDesk"`
	StartLocation *string `json:"start_location" validate:"omitempty,max=255"`
	EndLocation   *string `json:"end_location"   validate:"omitempty,max=255"`
	Status        *string `json:"status"         validate:"omitempty,oneof=Pending Approved Rejected"`
}

type travelRequestResponse struct {
	ID            int64     `json:"id"`
	User          int64     `json:"user"`
	Username      string    `json:"username"`
	ProjectName   string    `json:"project_name"`
	TravelPurpose string    `json:"travel_purpose"`
	StartDate     string    `json:"start_date"`
	TravelMode    string    `json:"travel_mode"`
	BookingMode   string    `json:"booking_mode"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type statusChangeResponse struct {
	RequestID  int64     `json:"request_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  int64     `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}

type modeCountResponse struct {
	TravelMode string  `json:"travel_mode"`
	Count      int64   `json:"count"`
	Percent    float64 `json:"percent"`
}

type recentRequestResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	ProjectName   string `json:"project_name"`
	Status        string `json:"status"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
	StartDate     string `json:"start_date"`
}

type statsResponse struct {
	Total           int64                   `json:"total"`
	Pending         int64                   `json:"pending"`
	Approved        int64                   `json:"approved"`
	Rejected        int64                   `json:"rejected"`
	PendingPercent  float64                 `json:"pending_percent"`
	ApprovedPercent float64                 `json:"approved_percent"`
	RejectedPercent float64                 `json:"rejected_percent"`
	Modes           []modeCountResponse     `json:"modes"`
	Recent          []recentRequestResponse `json:"recent"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}
