// file: internals/helpers/parse.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam membaca path param dan memvalidasi sebagai UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Parameter "+name+" wajib diisi")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Parameter "+name+" bukan UUID yang valid")
	}
	return id, nil
}

// ParseUUIDQuery membaca query param opsional; uuid.Nil jika kosong.
func ParseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Query "+name+" bukan UUID yang valid")
	}
	return id, nil
}
