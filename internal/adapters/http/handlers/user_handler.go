package handlers

import (
	"bandmate/internal/core/services"
	"bandmate/internal/pkg/pagination"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func userIDFromCtx(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// List handles listing users
// @Summary List users
// @Description List all users; admin only
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.FromQuery(c)
	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	out := make([]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": out,
		"meta":  pagination.NewMeta(params, total),
	})
}

// Get handles retrieving a user
// @Summary Get user
// @Description Get a user by ID; admin only
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := userIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// ChangeRoleRequest represents a global role change
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole handles changing a user's global role
// @Summary Change user role
// @Description Change a user's global role; admin only
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body ChangeRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	id, err := userIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.ChangeRole(c.Context(), id, req.Role)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User role updated successfully", user.ToResponse())
}

// Deactivate handles deactivating a user account
// @Summary Deactivate user
// @Description Deactivate a user and revoke all their sessions; admin only
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := userIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Deactivate(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User deactivated successfully", user.ToResponse())
}
