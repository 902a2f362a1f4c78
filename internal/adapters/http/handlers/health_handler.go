package handlers

import (
	"time"

	"bandmate/internal/config"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles the root endpoint
// @Summary API root
// @Description Basic service information
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "Bandmate API", fiber.Map{
		"service": "bandmate",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}

// Health handles the health check endpoint
// @Summary Health check
// @Description Service and database health status
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	data := fiber.Map{
		"status":   "ok",
		"uptime":   time.Since(startTime).Round(time.Second).String(),
		"database": dbStatus,
	}

	if dbStatus == "down" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service degraded",
			Data:    data,
		})
	}

	return response.Success(c, "Service healthy", data)
}
