package domain

import "errors"

var (
	ErrTokenInvalid = errors.New("token is invalid or expired")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
