package response

import (
	"bandmate/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// ExposeInternal controls whether internal error detail is echoed back.
// Set once at startup from the app mode; never enabled in production.
var ExposeInternal = false

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string, details ...string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
		Errors:  details,
	})
}

// FromError translates a domain error into the JSON envelope. Unknown
// errors are reported as a generic 500 with detail suppressed unless
// ExposeInternal is set.
func FromError(c *fiber.Ctx, err error) error {
	var details []string
	message := err.Error()

	if de, ok := err.(*domain.Error); ok {
		details = de.Details
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return Error(c, fiber.StatusBadRequest, message, details...)
	case domain.KindAuth:
		return Error(c, fiber.StatusUnauthorized, message, details...)
	case domain.KindForbidden:
		return Error(c, fiber.StatusForbidden, message, details...)
	case domain.KindNotFound:
		return Error(c, fiber.StatusNotFound, message, details...)
	case domain.KindConflict:
		return Error(c, fiber.StatusConflict, message, details...)
	default:
		if ExposeInternal {
			return Error(c, fiber.StatusInternalServerError, "Internal server error", err.Error())
		}
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string, details ...string) error {
	return Error(c, fiber.StatusBadRequest, message, details...)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
