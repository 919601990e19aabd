package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req models.RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(http.StatusOK, resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.authService.Me(ctx, userID)
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(http.StatusOK, user)
}
