package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

type userRow struct {
	ID          int64  `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex"`
	Username    string `gorm:"uniqueIndex"`
	Password    string
	FirstName   *string
	LastName    *string
	CreatedDate time.Time
	IsActive    bool
	IsAdmin     bool
	IsStaff     bool
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CreatedDate:  r.CreatedDate,
		IsActive:     r.IsActive,
		IsAdmin:      r.IsAdmin,
		IsStaff:      r.IsStaff,
		PasswordHash: r.Password,
	}
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and sets its ID. A unique violation on email or
// username surfaces as domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userRow{
		Email:       user.Email,
		Username:    user.Username,
		Password:    user.PasswordHash,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		CreatedDate: user.CreatedDate,
		IsActive:    user.IsActive,
		IsAdmin:     user.IsAdmin,
		IsStaff:     user.IsStaff,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = row.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}
