package handlers

import (
	"bandmate/internal/core/services"
	"bandmate/internal/pkg/pagination"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResourceHandler handles rehearsal resource endpoints
type ResourceHandler struct {
	resourceService *services.ResourceService
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func resourceIDFromCtx(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// Create handles resource creation
// @Summary Create resource
// @Description Create a bookable room or piece of equipment
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateResourceInput true "Resource data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var input services.CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.Create(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Resource created successfully", resource)
}

// List handles listing resources
// @Summary List resources
// @Description List rehearsal resources
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	params := pagination.FromQuery(c)
	resources, total, err := h.resourceService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Resources retrieved successfully", fiber.Map{
		"resources": resources,
		"meta":      pagination.NewMeta(params, total),
	})
}

// Get handles retrieving a resource
// @Summary Get resource
// @Description Get a resource by ID
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := resourceIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	resource, err := h.resourceService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Resource retrieved successfully", resource)
}

// Update handles updating a resource
// @Summary Update resource
// @Description Update resource details
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param body body services.UpdateResourceInput true "Fields to update"
// @Success 200 {object} response.Response
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := resourceIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	var input services.UpdateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.Update(c.Context(), id, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Resource updated successfully", resource)
}

// Delete handles deleting a resource
// @Summary Delete resource
// @Description Delete a resource
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Response
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := resourceIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	if err := h.resourceService.Delete(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Resource deleted successfully", nil)
}
