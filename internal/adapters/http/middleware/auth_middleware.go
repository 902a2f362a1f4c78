package middleware

import (
	"strconv"
	"strings"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/config"
	"bandmate/internal/core/services"
	"bandmate/internal/pkg/jwt"
	"bandmate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalClaims = "claims"
	LocalUserID = "userID"
	LocalRole   = "role"
)

func tokenFromRequest(c *fiber.Ctx) string {
	// Cookie first, then Authorization header
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware creates authentication middleware. Token presence and
// validity are checked before any role or membership predicate runs.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFromRequest(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// ClaimsFromCtx returns the claims set by AuthMiddleware
func ClaimsFromCtx(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*jwt.Claims)
	return claims, ok
}

// BandIDFromCtx parses the :bandId route parameter
func BandIDFromCtx(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("bandId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(access *services.AccessService, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if err := access.RequireRole(claims, allowedRoles...); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireBandMembership gates a band-scoped route on membership.
// Admins pass unconditionally.
func RequireBandMembership(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		bandID, err := BandIDFromCtx(c)
		if err != nil {
			return response.BadRequest(c, "Invalid band id")
		}

		if err := access.RequireBandMembership(c.Context(), claims, bandID); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireBandOwnership gates a band-scoped route on ownership.
// Admins pass unconditionally.
func RequireBandOwnership(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		bandID, err := BandIDFromCtx(c)
		if err != nil {
			return response.BadRequest(c, "Invalid band id")
		}

		if err := access.RequireBandOwnership(c.Context(), claims, bandID); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireRehearsalManager gates rehearsal mutation routes on a managing
// membership (band owner/manager) or admin.
func RequireRehearsalManager(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		bandID, err := BandIDFromCtx(c)
		if err != nil {
			return response.BadRequest(c, "Invalid band id")
		}

		if err := access.RequireRehearsalManager(c.Context(), claims, bandID); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireRehearsalMember gates a rehearsal-scoped route on membership
// in the rehearsal's band.
func RequireRehearsalMember(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return response.BadRequest(c, "Invalid rehearsal id")
		}

		if err := access.RequireRehearsalMembership(c.Context(), claims, uint(id)); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireRehearsalManagement gates rehearsal mutation routes on a
// managing membership in the rehearsal's band.
func RequireRehearsalManagement(access *services.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return response.BadRequest(c, "Invalid rehearsal id")
		}

		if err := access.RequireRehearsalManagement(c.Context(), claims, uint(id)); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly(access *services.AccessService) fiber.Handler {
	return RoleMiddleware(access, models.RoleAdmin)
}

// ManagerOrAdmin middleware allows manager or admin roles
func ManagerOrAdmin(access *services.AccessService) fiber.Handler {
	return RoleMiddleware(access, models.RoleManager, models.RoleAdmin)
}
