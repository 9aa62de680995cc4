package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "shuleni_backend/internals/helpers"
)

// OnlyRoles allows the request through when the token role is in the list.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

// RequireSchoolScope rejects tokens without a tenant claim. All /api/a and
// /api/u data routes sit behind this.
func RequireSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helper.GetSchoolIDFromToken(c); err != nil {
			return helper.JsonError(c, fiber.StatusForbidden, "Token is not scoped to a school")
		}
		return c.Next()
	}
}
