// file: internals/helpers/auth/actor.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (middleware should set these)
   ============================================ */

const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "role"      // string
	LocSchoolID = "school_id" // string UUID (tenant aktif dari token)
)

// GetUserIDFromToken membaca user_id yang di-set middleware JWT.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id bukan UUID yang valid")
	}
	return id, nil
}

// GetActorID: variant non-fatal untuk kolom audit (locked_by/published_by).
// Nil kalau token tidak membawa user_id.
func GetActorID(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

// GetActiveSchoolID membaca tenant aktif dari token.
func GetActiveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocSchoolID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "School context tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id bukan UUID yang valid")
	}
	return id, nil
}

// GetRole membaca role aktif; string kosong kalau tidak ada.
func GetRole(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return s
	}
	return ""
}
