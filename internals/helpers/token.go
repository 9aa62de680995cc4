package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocalsUserID   = "user_id"
	LocalsSchoolID = "school_id"
	LocalsRole     = "role"
)

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsUserID).(string)
	if raw == "" {
		return uuid.Nil, errors.New("missing user_id in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid user_id in token")
	}
	return id, nil
}

// GetSchoolIDFromToken resolves the tenant scope of the request.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsSchoolID).(string)
	if raw == "" {
		return uuid.Nil, errors.New("missing school_id in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid school_id in token")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRole).(string)
	return role
}
