package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger, now: time.Now}
}

// Register creates an ordinary account. Every violation (blank fields, taken
// email, taken username) is reported in a single *domain.ValidationError.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.createUser(ctx, username, email, password, false, false)
}

// CreateStaff creates a staff account, optionally with the admin flag.
func (s *AuthService) CreateStaff(ctx context.Context, username, email, password string, admin bool) (*domain.User, error) {
	return s.createUser(ctx, username, email, password, true, admin)
}

func (s *AuthService) createUser(ctx context.Context, username, email, password string, staff, admin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)

	verr := domain.NewValidationError()
	if username == "" {
		verr.Add("username", domain.MsgBlank)
	}
	if email == "" {
		verr.Add("email", domain.MsgBlank)
	}
	if password == "" {
		verr.Add("password", domain.MsgBlank)
	}
	checkMaxLength(verr, "username", username, domain.MaxUsernameLength)
	checkMaxLength(verr, "email", email, domain.MaxEmailLength)
	if verr.HasErrors() {
		return nil, verr
	}

	if err := s.checkAvailable(ctx, username, email, verr); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		CreatedDate:  s.now().UTC(),
		IsActive:     true,
		IsStaff:      staff,
		IsAdmin:      admin,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// lost a race with a concurrent registration
			verr.Add(domain.NonFieldErrors, "A user with this email or username already exists.")
			return nil, verr
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Bool("staff", staff).Msg("user created")
	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string, verr *domain.ValidationError) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		verr.Add("email", "user with this email already exists.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		verr.Add("username", "user with this username already exists.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// Login verifies credentials and issues a token pair. When asAdmin is set the
// account must also be staff.
func (s *AuthService) Login(ctx context.Context, email, password string, asAdmin bool) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if asAdmin && !user.IsStaff {
		s.logger.Warn().Int64("user_id", user.ID).Msg("admin login refused for non-staff user")
		return nil, domain.ErrNotAdmin
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &ports.LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The account
// is reloaded so deactivated users and changed flags take effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrTokenInvalid
		}
		return "", err
	}
	if !user.IsActive {
		return "", domain.ErrTokenInvalid
	}

	return s.tokens.IssueAccess(user)
}

func checkMaxLength(verr *domain.ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}
