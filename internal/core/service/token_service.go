package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

const tokenIssuer = "travel-requests"

// tokenClaims is the JWT payload shared by access and refresh tokens.
type tokenClaims struct {
	UserID    int64  `json:"user_id"`
	IsStaff   bool   `json:"is_staff"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. Access tokens are
// short lived; refresh tokens only mint new access tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 5 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssuePair returns a fresh access token and refresh token for user.
func (s *TokenService) IssuePair(user *domain.User) (access, refresh string, err error) {
	access, err = s.issue(user, domain.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.issue(user, domain.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess returns a fresh access token for user.
func (s *TokenService) IssueAccess(user *domain.User) (string, error) {
	return s.issue(user, domain.TokenTypeAccess, s.accessTTL)
}

func (s *TokenService) issue(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:    user.ID,
		IsStaff:   user.IsStaff,
		IsAdmin:   user.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseAccessToken verifies an access token.
func (s *TokenService) ParseAccessToken(token string) (*ports.TokenClaims, error) {
	return s.parse(token, domain.TokenTypeAccess)
}

// ParseRefreshToken verifies a refresh token.
func (s *TokenService) ParseRefreshToken(token string) (*ports.TokenClaims, error) {
	return s.parse(token, domain.TokenTypeRefresh)
}

func (s *TokenService) parse(token, wantType string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.TokenType != wantType || claims.UserID == 0 {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{
		UserID:    claims.UserID,
		IsStaff:   claims.IsStaff,
		IsAdmin:   claims.IsAdmin,
		TokenType: claims.TokenType,
	}, nil
}
