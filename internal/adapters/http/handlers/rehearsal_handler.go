package handlers

import (
	"bandmate/internal/adapters/http/middleware"
	"bandmate/internal/core/services"
	"bandmate/internal/pkg/pagination"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RehearsalHandler handles rehearsal endpoints
type RehearsalHandler struct {
	rehearsalService *services.RehearsalService
}

// NewRehearsalHandler creates a new rehearsal handler
func NewRehearsalHandler(rehearsalService *services.RehearsalService) *RehearsalHandler {
	return &RehearsalHandler{rehearsalService: rehearsalService}
}

func rehearsalIDFromCtx(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// Create handles scheduling a rehearsal
// @Summary Schedule rehearsal
// @Description Schedule a rehearsal for a band; requires a manager role in the band
// @Tags Rehearsals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param body body services.CreateRehearsalInput true "Rehearsal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bands/{bandId}/rehearsals [post]
func (h *RehearsalHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	var input services.CreateRehearsalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rehearsal, err := h.rehearsalService.Create(c.Context(), bandID, claims.UserID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Rehearsal scheduled successfully", rehearsal)
}

// ListByBand handles listing a band's rehearsals
// @Summary List band rehearsals
// @Description List rehearsals for a band; requires membership
// @Tags Rehearsals
// @Produce json
// @Security BearerAuth
// @Param bandId path int true "Band ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /bands/{bandId}/rehearsals [get]
func (h *RehearsalHandler) ListByBand(c *fiber.Ctx) error {
	bandID, err := middleware.BandIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid band ID")
	}

	params := pagination.FromQuery(c)
	rehearsals, total, err := h.rehearsalService.ListByBand(c.Context(), bandID, params.Offset, params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Rehearsals retrieved successfully", fiber.Map{
		"rehearsals": rehearsals,
		"meta":       pagination.NewMeta(params, total),
	})
}

// Get handles retrieving a rehearsal
// @Summary Get rehearsal
// @Description Get a rehearsal by ID
// @Tags Rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rehearsal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rehearsals/{id} [get]
func (h *RehearsalHandler) Get(c *fiber.Ctx) error {
	id, err := rehearsalIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rehearsal ID")
	}

	rehearsal, err := h.rehearsalService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Rehearsal retrieved successfully", rehearsal)
}

// Update handles rescheduling or editing a rehearsal
// @Summary Update rehearsal
// @Description Update rehearsal details; requires a manager role in the band
// @Tags Rehearsals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rehearsal ID"
// @Param body body services.UpdateRehearsalInput true "Fields to update"
// @Success 200 {object} response.Response
// @Router /rehearsals/{id} [put]
func (h *RehearsalHandler) Update(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := rehearsalIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rehearsal ID")
	}

	var input services.UpdateRehearsalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rehearsal, err := h.rehearsalService.Update(c.Context(), id, claims.UserID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Rehearsal updated successfully", rehearsal)
}

// Cancel handles cancelling a rehearsal
// @Summary Cancel rehearsal
// @Description Cancel a rehearsal; cancelling twice is a no-op
// @Tags Rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rehearsal ID"
// @Success 200 {object} response.Response
// @Router /rehearsals/{id} [delete]
func (h *RehearsalHandler) Cancel(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := rehearsalIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rehearsal ID")
	}

	rehearsal, err := h.rehearsalService.Cancel(c.Context(), id, claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Rehearsal cancelled successfully", rehearsal)
}

// RSVP handles setting the caller's attendance for a rehearsal
// @Summary RSVP to rehearsal
// @Description Set or update the caller's attendance status
// @Tags Rehearsals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rehearsal ID"
// @Param body body services.RSVPInput true "Attendance status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /rehearsals/{id}/attendance [post]
func (h *RehearsalHandler) RSVP(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := rehearsalIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rehearsal ID")
	}

	var input services.RSVPInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendance, err := h.rehearsalService.RSVP(c.Context(), id, claims.UserID, &input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Attendance recorded successfully", attendance)
}

// ListAttendance handles listing attendance for a rehearsal
// @Summary List rehearsal attendance
// @Description List attendance responses for a rehearsal
// @Tags Rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rehearsal ID"
// @Success 200 {object} response.Response
// @Router /rehearsals/{id}/attendance [get]
func (h *RehearsalHandler) ListAttendance(c *fiber.Ctx) error {
	id, err := rehearsalIDFromCtx(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rehearsal ID")
	}

	attendance, err := h.rehearsalService.ListAttendance(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Attendance retrieved successfully", fiber.Map{
		"attendance": attendance,
	})
}
