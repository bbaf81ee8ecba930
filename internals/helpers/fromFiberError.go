package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah *fiber.Error menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
