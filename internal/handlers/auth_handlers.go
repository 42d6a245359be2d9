package handlers

import (
	"errors"
	"net/http"

	"edumart/internal/common"
	"edumart/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandlers(authService services.AuthService, userService services.UserService) *AuthHandlers {
	return &AuthHandlers{authService: authService, userService: userService}
}

type LoginRequest struct {
	Subdomain string `json:"subdomain"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.Subdomain == "" || req.Email == "" || req.Password == "" {
		return common.SendBadRequest(c, "subdomain, email and password are required")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Subdomain, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserBlocked) {
			return common.SendForbidden(c)
		}
		return common.SendUnauthorized(c)
	}
	return c.JSON(http.StatusOK, tokens)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendBadRequest(c, "refresh_token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendUnauthorized(c)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	user, err := h.userService.GetByID(ctx, orgID, userID)
	if err != nil {
		return common.SendNotFound(c, "User")
	}
	return c.JSON(http.StatusOK, user)
}
