package handler

import (
	"math"
	"time"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTravelRequestRequest) (ports.CreateTravelRequestInput, error) {
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return ports.CreateTravelRequestInput{}, err
	}
	return ports.CreateTravelRequestInput{
		ProjectName:   req.ProjectName,
		TravelPurpose: req.TravelPurpose,
		StartDate:     start,
		TravelMode:    req.TravelMode,
		BookingMode:   req.BookingMode,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
	}, nil
}

func toUpdateInput(req updateTravelRequestRequest) (ports.UpdateTravelRequestInput, error) {
	in := ports.UpdateTravelRequestInput{
		ProjectName:   req.ProjectName,
		TravelPurpose: req.TravelPurpose,
		TravelMode:    req.TravelMode,
		BookingMode:   req.BookingMode,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		Status:        req.Status,
	}
	if req.StartDate != nil {
		start, err := time.Parse(domain.DateLayout, *req.StartDate)
		if err != nil {
			return in, err
		}
		in.StartDate = &start
	}
	return in, nil
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CreatedDate: u.CreatedDate.UTC().Format(time.RFC3339),
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		IsStaff:     u.IsStaff,
	}
}

func toTravelResponse(tr *domain.TravelRequest) travelRequestResponse {
	return travelRequestResponse{
		ID:            tr.ID,
		User:          tr.UserID,
		Username:      tr.Username,
		ProjectName:   tr.ProjectName,
		TravelPurpose: tr.TravelPurpose,
		StartDate:     tr.StartDate.Format(domain.DateLayout),
		TravelMode:    string(tr.TravelMode),
		BookingMode:   string(tr.BookingMode),
		StartLocation: tr.StartLocation,
		EndLocation:   tr.EndLocation,
		Status:        string(tr.Status),
		CreatedAt:     tr.CreatedAt,
		UpdatedAt:     tr.UpdatedAt,
	}
}

func toTravelResponses(list []domain.TravelRequest) []travelRequestResponse {
	out := make([]travelRequestResponse, 0, len(list))
	for i := range list {
		out = append(out, toTravelResponse(&list[i]))
	}
	return out
}

func toHistoryResponse(changes []domain.StatusChange) []statusChangeResponse {
	out := make([]statusChangeResponse, 0, len(changes))
	for _, c := range changes {
		out = append(out, statusChangeResponse{
			RequestID:  c.RequestID,
			FromStatus: string(c.From),
			ToStatus:   string(c.To),
			ChangedBy:  c.ChangedBy,
			ChangedAt:  c.ChangedAt,
		})
	}
	return out
}

func toStatsResponse(s *domain.Stats) statsResponse {
	resp := statsResponse{
		Total:           s.Total,
		Pending:         s.Pending,
		Approved:        s.Approved,
		Rejected:        s.Rejected,
		PendingPercent:  round1(s.PendingPercent()),
		ApprovedPercent: round1(s.ApprovedPercent()),
		RejectedPercent: round1(s.RejectedPercent()),
		Modes:           make([]modeCountResponse, 0, len(s.Modes)),
		Recent:          make([]recentRequestResponse, 0, len(s.Recent)),
		GeneratedAt:     s.GeneratedAt,
	}
	for _, m := range s.Modes {
		resp.Modes = append(resp.Modes, modeCountResponse{
			TravelMode: m.TravelMode,
			Count:      m.Count,
			Percent:    round1(domain.Percent(m.Count, s.Total)),
		})
	}
	for _, r := range s.Recent {
		resp.Recent = append(resp.Recent, recentRequestResponse{
			ID:            r.ID,
			Username:      r.Username,
			ProjectName:   r.ProjectName,
			Status:        r.Status,
			StartLocation: r.StartLocation,
			EndLocation:   r.EndLocation,
			StartDate:     r.StartDate.Format(domain.DateLayout),
		})
	}
	return resp
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
