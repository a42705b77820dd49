package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type travelRequestRow struct {
	ID            int64 `gorm:"primaryKey"`
	UserID        int64
	Username      string `gorm:"->;-:migration"` // joined from users
	ProjectName   string
	TravelPurpose string
	StartDate     time.Time `gorm:"type:date"`
	TravelMode    string
	BookingMode   string
	StartLocation string
	EndLocation   string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (travelRequestRow) TableName() string { return "travel_requests" }

func (r *travelRequestRow) toDomain() domain.TravelRequest {
	return domain.TravelRequest{
		ID:            r.ID,
		UserID:        r.UserID,
		Username:      r.Username,
		ProjectName:   r.ProjectName,
		TravelPurpose: r.TravelPurpose,
		StartDate:     r.StartDate,
		TravelMode:    domain.TravelMode(r.TravelMode),
		BookingMode:   domain.BookingMode(r.BookingMode),
		StartLocation: r.StartLocation,
		EndLocation:   r.EndLocation,
		Status:        domain.TravelStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func fromDomain(tr *domain.TravelRequest) travelRequestRow {
	return travelRequestRow{
		ID:            tr.ID,
		UserID:        tr.UserID,
		ProjectName:   tr.ProjectName,
		TravelPurpose: tr.TravelPurpose,
		StartDate:     tr.StartDate,
		TravelMode:    string(tr.TravelMode),
		BookingMode:   string(tr.BookingMode),
		StartLocation: tr.StartLocation,
		EndLocation:   tr.EndLocation,
		Status:        string(tr.Status),
		CreatedAt:     tr.CreatedAt,
		UpdatedAt:     tr.UpdatedAt,
	}
}

// TravelRequestRepository stores travel requests. Reads join the owner's
// username in a single query.
type TravelRequestRepository struct {
	db *gorm.DB
}

func NewTravelRequestRepository(db *gorm.DB) *TravelRequestRepository {
	return &TravelRequestRepository{db: db}
}

func (r *TravelRequestRepository) withOwner(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&travelRequestRow{}).
		Select("travel_requests.*, users.username").
		Joins("JOIN users ON users.id = travel_requests.user_id")
}

func scopeOwner(q *gorm.DB, ownerID int64) *gorm.DB {
	if ownerID != 0 {
		return q.Where("travel_requests.user_id = ?", ownerID)
	}
	return q
}

// Create inserts tr, then reloads it so the ID and owner's username are set.
func (r *TravelRequestRepository) Create(ctx context.Context, tr *domain.TravelRequest) error {
	row := fromDomain(tr)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert travel request: %w", err)
	}

	stored, err := r.FindByID(ctx, row.ID, 0)
	if err != nil {
		return err
	}
	*tr = *stored
	return nil
}

func (r *TravelRequestRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.TravelRequest, error) {
	var row travelRequestRow
	q := scopeOwner(r.withOwner(ctx).Where("travel_requests.id = ?", id), ownerID)
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTravelRequestNotFound
		}
		return nil, fmt.Errorf("find travel request: %w", err)
	}
	tr := row.toDomain()
	return &tr, nil
}

// List returns the visible requests ordered by id.
func (r *TravelRequestRepository) List(ctx context.Context, ownerID int64) ([]domain.TravelRequest, error) {
	var rows []travelRequestRow
	q := scopeOwner(r.withOwner(ctx), ownerID).Order("travel_requests.id ASC")
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list travel requests: %w", err)
	}

	out := make([]domain.TravelRequest, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// Update writes every mutable column of tr. The owner and creation time are
// never changed.
func (r *TravelRequestRepository) Update(ctx context.Context, tr *domain.TravelRequest) error {
	res := r.db.WithContext(ctx).
		Model(&travelRequestRow{}).
		Where("id = ?", tr.ID).
		Updates(map[string]interface{}{
			"project_name":   tr.ProjectName,
			"travel_purpose": tr.TravelPurpose,
			"start_date":     tr.StartDate,
			"travel_mode":    string(tr.TravelMode),
			"booking_mode":   string(tr.BookingMode),
			"start_location": tr.StartLocation,
			"end_location":   tr.EndLocation,
			"status":         string(tr.Status),
			"updated_at":     tr.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update travel request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTravelRequestNotFound
	}
	return nil
}

func (r *TravelRequestRepository) Delete(ctx context.Context, id, ownerID int64) error {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != 0 {
		q = q.Where("user_id = ?", ownerID)
	}
	res := q.Delete(&travelRequestRow{})
	if res.Error != nil {
		return fmt.Errorf("delete travel request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTravelRequestNotFound
	}
	return nil
}

type groupCount struct {
	Name  string
	Count int64
}

// Aggregate computes status and travel mode counts plus the recentLimit most
// recently created requests.
func (r *TravelRequestRepository) Aggregate(ctx context.Context, recentLimit int) (*domain.Stats, error) {
	stats := &domain.Stats{Modes: []domain.ModeCount{}, Recent: []domain.RecentRequest{}}

	var byStatus []groupCount
	err := r.db.WithContext(ctx).
		Model(&travelRequestRow{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	for _, g := range byStatus {
		stats.Total += g.Count
		switch domain.TravelStatus(g.Name) {
		case domain.StatusPending:
			stats.Pending = g.Count
		case domain.StatusApproved:
			stats.Approved = g.Count
		case domain.StatusRejected:
			stats.Rejected = g.Count
		}
	}

	var byMode []groupCount
	err = r.db.WithContext(ctx).
		Model(&travelRequestRow{}).
		Select("travel_mode AS name, COUNT(*) AS count").
		Group("travel_mode").
		Order("travel_mode").
		Scan(&byMode).Error
	if err != nil {
		return nil, fmt.Errorf("count by travel mode: %w", err)
	}
	for _, g := range byMode {
		stats.Modes = append(stats.Modes, domain.ModeCount{TravelMode: g.Name, Count: g.Count})
	}

	var recent []travelRequestRow
	err = r.withOwner(ctx).
		Order("travel_requests.created_at DESC, travel_requests.id DESC").
		Limit(recentLimit).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("recent travel requests: %w", err)
	}
	for _, row := range recent {
		stats.Recent = append(stats.Recent, domain.RecentRequest{
			ID:            row.ID,
			Username:      row.Username,
			ProjectName:   row.ProjectName,
			Status:        row.Status,
			StartLocation: row.StartLocation,
			EndLocation:   row.EndLocation,
			StartDate:     row.StartDate,
			CreatedAt:     row.CreatedAt,
		})
	}

	return stats, nil
}
