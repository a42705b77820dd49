package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("not authorized as an admin")
)

// Column limits of the users table.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 255
)

// User models an account that can sign in. Staff users can review every travel
// request and use the chat assistant; admin is a superset flag kept for parity
// with accounts created from the command line.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	CreatedDate  time.Time `json:"created_date"`
	IsActive     bool      `json:"is_active"`
	IsAdmin      bool      `json:"is_admin"`
	IsStaff      bool      `json:"is_staff"`
	PasswordHash string    `json:"-"`
}

// NormalizeEmail trims the address and lower-cases its domain part. The local
// part is left untouched since mailbox names may be case sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
