package handlers

import (
	"bandmate/internal/adapters/http/middleware"
	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/services"
	"bandmate/internal/pkg/pagination"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BandHandler handles band endpoints
type BandHandler struct {
	bandService *services.BandService
}

// NewBandHandler creates a new band handler
func NewBandHandler(bandService *services.BandService) *BandHandler {
	return &BandHandler{bandService: bandService}
}

// Create handles band creation
// @Summary Create band
// @Description Create a new band; the creator becomes its owner
// @Tags Bands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBandInput true "Band data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bands [post]
func (h *BandHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateBandInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	band, err := h.bandService.Create(c.Context(), claims.UserID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Band created successfully", band)
}

// List handles listing bands. Members see their own bands; an admin
// may pass ?all=true to page through every band.
// @Summary List bands
// @Description List the caller's bands, or all bands for admins with all=true
// @Tags Bands
// @Produce json
// @Security BearerAuth
// @Param all query bool false "List all bands (admin only)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /bands [get]
func (h *BandHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if c.QueryBool("all") && claims.Role == models.RoleAdmin {
		params := pagination.FromQuery(c)
		bands, total, err := h.bandService.ListAll(c.Context(), params.Offset, params.Limit)
		if err != nil {
			return response.FromError(c, err)
		}
		return response.Success(c, "Bands retrieved successfully", fiber.Map{
			"bands": bands,
			"meta":  pagination.NewMeta(params, total),
		})
	}

	bands, err := h.bandService.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Bands retrieved successfully", fiber.Map{
		"bands": bands,
	})
}

// Get handles retrieving a single band
// @Summary Get band
// @Description Get a band by ID; requires membership
// @Tags Bands
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bands/{bandId} [get]
func (h *BandHandler) Get(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	band, err := h.bandService.GetByID(c.Context(), bandID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Band retrieved successfully", band)
}

// Update handles updating a band
// @Summary Update band
// @Description Update band details; requires ownership
// @Tags Bands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param body body services.UpdateBandInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bands/{bandId} [put]
func (h *BandHandler) Update(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	var input services.UpdateBandInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	band, err := h.bandService.Update(c.Context(), bandID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Band updated successfully", band)
}

// Delete handles deleting a band
// @Summary Delete band
// @Description Delete a band and its memberships; requires ownership
// @Tags Bands
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bands/{bandId} [delete]
func (h *BandHandler) Delete(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	if err := h.bandService.Delete(c.Context(), bandID); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Band deleted successfully", nil)
}

// ListMembers handles listing band members
// @Summary List band members
// @Description List members of a band; requires membership
// @Tags Bands
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Success 200 {object} response.Response
// @Router /bands/{bandId}/members [get]
func (h *BandHandler) ListMembers(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	members, err := h.bandService.ListMembers(c.Context(), bandID)
	if err != nil {
		return response.FromError(c, err)
	}

	out := make([]interface{}, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToResponse())
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": out,
	})
}

// AddMember handles adding a member to a band
// @Summary Add band member
// @Description Add a user to a band; requires ownership
// @Tags Bands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param body body services.AddMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bands/{bandId}/members [post]
func (h *BandHandler) AddMember(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	var input services.AddMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.bandService.AddMember(c.Context(), bandID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Member added successfully", member.ToResponse())
}

// UpdateMemberRequest represents a member role change
type UpdateMemberRequest struct {
	Role string `json:"role"`
}

// UpdateMember handles changing a member's band role
// @Summary Update band member role
// @Description Change a member's role within a band; requires ownership
// @Tags Bands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param userId path int true "User ID"
// @Param body body UpdateMemberRequest true "New role"
// @Success 200 {object} response.Response
// @Router /bands/{bandId}/members/{userId} [put]
func (h *BandHandler) UpdateMember(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.bandService.UpdateMemberRole(c.Context(), bandID, uint(userID), req.Role); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Member role updated successfully", nil)
}

// RemoveMember handles removing a member from a band
// @Summary Remove band member
// @Description Remove a user from a band; the owner cannot be removed
// @Tags Bands
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /bands/{bandId}/members/{userId} [delete]
func (h *BandHandler) RemoveMember(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.bandService.RemoveMember(c.Context(), bandID, uint(userID)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Member removed successfully", nil)
}
