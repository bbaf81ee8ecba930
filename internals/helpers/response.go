package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationErrorMap mengubah validator.ValidationErrors → map field → tags.
// Error lain dikembalikan di key "_".
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		name := fe.Field()
		msg := fe.Tag()
		if p := strings.TrimSpace(fe.Param()); p != "" {
			msg += "=" + p
		}
		out[name] = append(out[name], msg)
	}
	return out
}

// ValidationError: shortcut controller → 422 dengan detail per field.
func ValidationError(c *fiber.Ctx, err error) error {
	return JsonValidationError(c, ValidationErrorMap(err))
}
