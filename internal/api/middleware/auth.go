package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUserID  = "user_id"
	CtxIsStaff = "is_staff"
	CtxIsAdmin = "is_admin"
)

const (
	MsgNoCredentials = "Authentication credentials were not provided."
	MsgInvalidToken  = "Given token not valid for any token type"
	MsgNotStaff      = "You do not have permission to perform this action."
)

// Auth validates the bearer access token and injects the caller's identity.
func Auth(tokens ports.TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgNoCredentials)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
			}

			claims, err := tokens.ParseAccessToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxIsStaff, claims.IsStaff)
			c.Set(CtxIsAdmin, claims.IsAdmin)

			return next(c)
		}
	}
}

// RequireStaff rejects callers whose token is not marked staff. It must run
// after Auth.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if staff, _ := c.Get(CtxIsStaff).(bool); !staff {
				return echo.NewHTTPError(http.StatusForbidden, MsgNotStaff)
			}
			return next(c)
		}
	}
}
