package handlers

import (
	"errors"
	"net/http"

	"edumart/internal/common"
	"edumart/internal/services"
	"edumart/internal/validation"

	"github.com/labstack/echo/v4"
)

type UserHandlers struct {
	userService services.UserService
	registry    *validation.Registry
}

func NewUserHandlers(userService services.UserService, registry *validation.Registry) *UserHandlers {
	return &UserHandlers{userService: userService, registry: registry}
}

// CreateUser creates the user and its role profile in one request.
func (h *UserHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityUser)
	if sources := validation.Validate(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	var req services.CreateUserRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	user, err := h.userService.Create(ctx, orgID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "email", Message: services.ErrEmailTaken.Error()},
			})
		}
		return common.SendPersistenceError(c, "users", err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}

	limit, offset := parsePagination(c)
	users, err := h.userService.List(ctx, orgID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list users")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *UserHandlers) GetSingleUser(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid user ID format")
	}

	user, err := h.userService.GetByID(ctx, orgID, id)
	if err != nil {
		return common.SendNotFound(c, "User")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid user ID format")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}
	d, _ := h.registry.Get(validation.EntityUser)
	if sources := validation.ValidatePartial(d, payload); len(sources) > 0 {
		return common.SendValidationError(c, sources)
	}

	var req services.UpdateUserRequest
	if err := validation.Decode(payload, &req); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	user, err := h.userService.Update(ctx, orgID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrRoleImmutable) {
			return common.SendValidationError(c, []validation.ErrorSource{
				{Path: "role", Message: services.ErrRoleImmutable.Error()},
			})
		}
		return common.SendPersistenceError(c, "users", err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser soft-deletes the user and its profile together.
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid user ID format")
	}

	if err := h.userService.SoftDelete(ctx, orgID, id); err != nil {
		return common.SendNotFound(c, "User")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

type blockUserPayload struct {
	Blocked bool `json:"blocked"`
}

// BlockUser toggles the block flag.
func (h *UserHandlers) BlockUser(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrgIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return common.SendBadRequest(c, "Invalid user ID format")
	}

	var body blockUserPayload
	if err := c.Bind(&body); err != nil {
		return common.SendBadRequest(c, "Invalid request format")
	}

	if err := h.userService.SetBlocked(ctx, orgID, id, body.Blocked); err != nil {
		return common.SendServerError(c, "Failed to update user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User updated successfully"})
}
