package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := open(postgres.New(postgres.Config{Conn: sqlDB}))
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

var travelColumns = []string{
	"id", "user_id", "project_name", "travel_purpose", "start_date", "travel_mode",
	"booking_mode", "start_location", "end_location", "status", "created_at", "updated_at", "username",
}

func travelRow(rows *sqlmock.Rows, id, userID int64, status string) *sqlmock.Rows {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, userID, "Apollo", "workshop", now.AddDate(0, 1, 0), "train",
		"self", "Berlin", "Munich", status, now, now, "alice")
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &domain.User{Email: "a@example.com", Username: "alice", PasswordHash: "hash", IsActive: true}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected id 7, got %d", user.ID)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)

	err := repo.Create(context.Background(), &domain.User{Email: "a@example.com", Username: "alice"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password", "is_active", "is_staff"}).
			AddRow(3, "a@example.com", "alice", "hash", true, true))

	user, err := repo.FindByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.ID != 3 || user.PasswordHash != "hash" || !user.IsStaff {
		t.Fatalf("unexpected user: %+v", user)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.FindByID(context.Background(), 9); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

// ---------------------------------------------------------------------------
// Travel requests
// ---------------------------------------------------------------------------

func TestTravelRequestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectQuery(`INSERT INTO "travel_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`SELECT travel_requests\.\*, users\.username FROM "travel_requests" JOIN users`).
		WillReturnRows(travelRow(sqlmock.NewRows(travelColumns), 11, 1, "Pending"))

	tr := &domain.TravelRequest{UserID: 1, ProjectName: "Apollo", Status: domain.StatusPending}
	if err := repo.Create(context.Background(), tr); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tr.ID != 11 || tr.Username != "alice" {
		t.Fatalf("expected reloaded request, got %+v", tr)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_FindByID_ScopedToOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectQuery(`WHERE travel_requests\.id = \$1 AND travel_requests\.user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(travelColumns))

	if _, err := repo.FindByID(context.Background(), 11, 2); !errors.Is(err, domain.ErrTravelRequestNotFound) {
		t.Fatalf("expected ErrTravelRequestNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	rows := sqlmock.NewRows(travelColumns)
	travelRow(rows, 1, 1, "Pending")
	travelRow(rows, 2, 1, "Approved")
	mock.ExpectQuery(`ORDER BY travel_requests\.id ASC`).WillReturnRows(rows)

	list, err := repo.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].Status != domain.StatusApproved || list[0].Username != "alice" {
		t.Fatalf("unexpected list: %+v", list)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectExec(`UPDATE "travel_requests" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "travel_requests" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	tr := &domain.TravelRequest{ID: 5, Status: domain.StatusApproved}
	if err := repo.Update(context.Background(), tr); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := repo.Update(context.Background(), tr); !errors.Is(err, domain.ErrTravelRequestNotFound) {
		t.Fatalf("expected ErrTravelRequestNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectExec(`DELETE FROM "travel_requests" WHERE id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "travel_requests" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5, 2); !errors.Is(err, domain.ErrTravelRequestNotFound) {
		t.Fatalf("expected ErrTravelRequestNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), 5, 0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_Aggregate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectQuery(`GROUP BY "status"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("Pending", 3).AddRow("Approved", 5).AddRow("Rejected", 2))
	mock.ExpectQuery(`GROUP BY "travel_mode"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("flight", 4).AddRow("train", 6))
	mock.ExpectQuery(`ORDER BY travel_requests\.created_at DESC`).
		WillReturnRows(travelRow(sqlmock.NewRows(travelColumns), 10, 1, "Pending"))

	stats, err := repo.Aggregate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Total != 10 || stats.Pending != 3 || stats.Approved != 5 || stats.Rejected != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Pending+stats.Approved+stats.Rejected != stats.Total {
		t.Fatalf("status counts must sum to total")
	}
	if len(stats.Modes) != 2 || stats.Modes[1].TravelMode != "train" || stats.Modes[1].Count != 6 {
		t.Fatalf("unexpected modes: %+v", stats.Modes)
	}
	if len(stats.Recent) != 1 || stats.Recent[0].Username != "alice" {
		t.Fatalf("unexpected recent: %+v", stats.Recent)
	}
	expectationsMet(t, mock)
}

func TestTravelRequestRepository_Aggregate_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTravelRequestRepository(db)

	mock.ExpectQuery(`GROUP BY "status"`).WillReturnRows(sqlmock.NewRows([]string{"name", "count"}))
	mock.ExpectQuery(`GROUP BY "travel_mode"`).WillReturnRows(sqlmock.NewRows([]string{"name", "count"}))
	mock.ExpectQuery(`ORDER BY`).WillReturnRows(sqlmock.NewRows(travelColumns))

	stats, err := repo.Aggregate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Total != 0 || stats.Modes == nil || stats.Recent == nil {
		t.Fatalf("expected zeroed stats with empty slices, got %+v", stats)
	}
	expectationsMet(t, mock)
}
