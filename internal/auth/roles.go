package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/domain"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// RequireRole ensures the caller holds one of the allowed roles. An empty
// list only requires authentication.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("No autenticado")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("No autorizado")
		}
		return c.Next()
	}
}
