package ports

import (
	"context"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

// LoginResult is returned after a successful login.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the identity carried by a verified bearer token.
type TokenClaims struct {
	UserID    int64
	IsStaff   bool
	IsAdmin   bool
	TokenType string
}

// TokenParser verifies access tokens for the auth middleware.
type TokenParser interface {
	ParseAccessToken(token string) (*TokenClaims, error)
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string, asAdmin bool) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
