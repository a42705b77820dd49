package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/api/metrics"
	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

type TravelService struct {
	repo     ports.TravelRequestRepository
	recorder ports.StatusRecorder
	history  ports.StatusEventRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewTravelService wires the travel-request use cases. recorder and history
// may be nil when the audit trail is disabled.
func NewTravelService(
	repo ports.TravelRequestRepository,
	recorder ports.StatusRecorder,
	history ports.StatusEventRepository,
	logger zerolog.Logger,
) *TravelService {
	return &TravelService{
		repo:     repo,
		recorder: recorder,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// ownerFilter returns the owner id used to scope repository queries: staff see
// every request, everyone else only their own.
func ownerFilter(actor ports.Actor) int64 {
	if actor.IsStaff {
		return 0
	}
	return actor.UserID
}

func (s *TravelService) List(ctx context.Context, actor ports.Actor) ([]domain.TravelRequest, error) {
	return s.repo.List(ctx, ownerFilter(actor))
}

// Create stores a new request owned by the caller. The status always starts as
// Pending regardless of the payload.
func (s *TravelService) Create(ctx context.Context, actor ports.Actor, input ports.CreateTravelRequestInput) (*domain.TravelRequest, error) {
	tr := &domain.TravelRequest{
		UserID:        actor.UserID,
		ProjectName:   strings.TrimSpace(input.ProjectName),
		TravelPurpose: input.TravelPurpose,
		StartDate:     input.StartDate,
		TravelMode:    domain.TravelMode(input.TravelMode),
		BookingMode:   domain.BookingMode(input.BookingMode),
		StartLocation: strings.TrimSpace(input.StartLocation),
		EndLocation:   strings.TrimSpace(input.EndLocation),
		Status:        domain.StatusPending,
	}

	verr := domain.NewValidationError()
	checkRequired(verr, "project_name", tr.ProjectName)
	checkRequired(verr, "travel_purpose", tr.TravelPurpose)
	checkRequired(verr, "start_location", tr.StartLocation)
	checkRequired(verr, "end_location", tr.EndLocation)
	checkModes(verr, tr)
	if !isFutureDate(tr.StartDate, s.now()) {
		verr.Add("start_date", domain.MsgFutureDate)
	}
	if err := tr.CheckRoute(); err != nil {
		verr.Add(domain.NonFieldErrors, domain.MsgSameLocations)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	now := s.now().UTC()
	tr.CreatedAt = now
	tr.UpdatedAt = now
	if err := s.repo.Create(ctx, tr); err != nil {
		s.logger.Error().Err(err).Int64("user_id", actor.UserID).Msg("failed to create travel request")
		return nil, err
	}

	metrics.TravelRequestsCreatedTotal.WithLabelValues(string(tr.TravelMode)).Inc()
	s.logger.Info().Int64("id", tr.ID).Int64("user_id", actor.UserID).Msg("travel request created")
	return tr, nil
}

func (s *TravelService) Get(ctx context.Context, actor ports.Actor, id int64) (*domain.TravelRequest, error) {
	return s.repo.FindByID(ctx, id, ownerFilter(actor))
}

// Update merges the provided fields into an existing request. Only staff may
// update, and the check runs before the lookup so ownership is irrelevant.
func (s *TravelService) Update(ctx context.Context, actor ports.Actor, id int64, input ports.UpdateTravelRequestInput) (*domain.TravelRequest, error) {
	if !actor.IsStaff {
		return nil, domain.ErrUpdateForbidden
	}

	tr, err := s.repo.FindByID(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	previous := tr.Status

	verr := domain.NewValidationError()
	if input.ProjectName != nil {
		tr.ProjectName = strings.TrimSpace(*input.ProjectName)
		checkRequired(verr, "project_name", tr.ProjectName)
	}
	if input.TravelPurpose != nil {
		tr.TravelPurpose = *input.TravelPurpose
		checkRequired(verr, "travel_purpose", tr.TravelPurpose)
	}
	if input.StartDate != nil {
		tr.StartDate = *input.StartDate
	}
	if input.TravelMode != nil {
		tr.TravelMode = domain.TravelMode(*input.TravelMode)
	}
	if input.BookingMode != nil {
		tr.BookingMode = domain.BookingMode(*input.BookingMode)
	}
	if input.StartLocation != nil {
		tr.StartLocation = strings.TrimSpace(*input.StartLocation)
		checkRequired(verr, "start_location", tr.StartLocation)
	}
	if input.EndLocation != nil {
		tr.EndLocation = strings.TrimSpace(*input.EndLocation)
		checkRequired(verr, "end_location", tr.EndLocation)
	}
	if input.Status != nil {
		tr.Status = domain.TravelStatus(*input.Status)
		if !tr.Status.Valid() {
			verr.Add("status", invalidChoice(*input.Status))
		}
	}
	checkModes(verr, tr)
	if err := tr.CheckRoute(); err != nil {
		verr.Add(domain.NonFieldErrors, domain.MsgSameLocations)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	tr.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, tr); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update travel request")
		return nil, err
	}

	if tr.Status != previous {
		metrics.StatusChangesTotal.WithLabelValues(string(tr.Status)).Inc()
		s.logger.Info().
			Int64("id", id).
			Str("from", string(previous)).
			Str("to", string(tr.Status)).
			Int64("changed_by", actor.UserID).
			Msg("travel request status changed")
		if s.recorder != nil {
			s.recorder.Enqueue(domain.StatusChange{
				RequestID: id,
				From:      previous,
				To:        tr.Status,
				ChangedBy: actor.UserID,
				ChangedAt: tr.UpdatedAt,
			})
		}
	}

	return tr, nil
}

func (s *TravelService) Delete(ctx context.Context, actor ports.Actor, id int64) error {
	if err := s.repo.Delete(ctx, id, ownerFilter(actor)); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Int64("user_id", actor.UserID).Msg("travel request deleted")
	return nil
}

// History returns the status audit trail of a request, oldest first.
func (s *TravelService) History(ctx context.Context, id int64) ([]domain.StatusChange, error) {
	if _, err := s.repo.FindByID(ctx, id, 0); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.StatusChange{}, nil
	}
	changes, err := s.history.ListByRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	return changes, nil
}

func checkRequired(verr *domain.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, domain.MsgBlank)
	}
}

func checkModes(verr *domain.ValidationError, tr *domain.TravelRequest) {
	switch tr.TravelMode {
	case domain.ModeTrain, domain.ModeFlight:
	default:
		verr.Add("travel_mode", invalidChoice(string(tr.TravelMode)))
	}
	switch tr.BookingMode {
	case domain.BookingSelf, domain.BookingTravelDesk:
	default:
		verr.Add("booking_mode", invalidChoice(string(tr.BookingMode)))
	}
}

func invalidChoice(v string) string {
	return fmt.Sprintf("%q is not a valid choice.", v)
}

// isFutureDate reports whether d falls on a calendar day after now's.
func isFutureDate(d, now time.Time) bool {
	today := now.Format(domain.DateLayout)
	return d.Format(domain.DateLayout) > today
}
