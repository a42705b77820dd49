package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type userResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	CreatedDate string  `json:"created_date"`
	IsActive    bool    `json:"is_active"`
	IsAdmin     bool    `json:"is_admin"`
	IsStaff     bool    `json:"is_staff"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type registerErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type loginResponse struct {
	Message      string       `json:"message"`
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  registerErrorResponse
// @Failure      500   {object}  map[string]string
// @Router       /register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	err := c.Validate(&req)
	if err == nil {
		var user *domain.User
		user, err = h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
		if err == nil {
			return c.JSON(http.StatusCreated, registerResponse{
				Message: "User Created Successfully",
				User:    toUserResponse(user),
			})
		}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, registerErrorResponse{
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	}
	return err
}

// Login authenticates a user and returns an access and refresh token.
//
// @Summary      Login
// @Description  With isAdmin set, only staff accounts may sign in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:      "Login successful",
		User:         toUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/token/refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.Refresh == "" {
		return c.JSON(http.StatusBadRequest, map[string][]string{"refresh": {domain.MsgRequired}})
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refreshResponse{Access: access})
}
