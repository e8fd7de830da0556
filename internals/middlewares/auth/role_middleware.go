package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IsTrainingAdmin: hanya role admin / instructor yang boleh merakit konten
func IsTrainingAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hasAnyRole(c, "admin", "instructor") {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Akses khusus admin/instruktur training")
	}
}

func hasAnyRole(c *fiber.Ctx, wanted ...string) bool {
	v := c.Locals(LocRoles)
	if v == nil {
		return false
	}

	check := func(role string) bool {
		role = strings.ToLower(strings.TrimSpace(role))
		for _, w := range wanted {
			if role == w {
				return true
			}
		}
		return false
	}

	switch t := v.(type) {
	case string:
		for _, r := range strings.Split(t, ",") {
			if check(r) {
				return true
			}
		}
	case []string:
		for _, r := range t {
			if check(r) {
				return true
			}
		}
	case []any: // hasil decode claims JWT
		for _, r := range t {
			if s, ok := r.(string); ok && check(s) {
				return true
			}
		}
	}
	return false
}
