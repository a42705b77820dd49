package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveldesk/travel-requests/internal/api/middleware"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// ctxActor extracts the caller injected by the Auth middleware. A missing user
// id means the route was wired without authentication.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get(middleware.CtxUserID).(int64)
	if userID == 0 {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgNoCredentials)
	}
	isStaff, _ := c.Get(middleware.CtxIsStaff).(bool)
	return ports.Actor{UserID: userID, IsStaff: isStaff}, nil
}
