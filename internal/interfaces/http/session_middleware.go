package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dailishaw/dailishaw-api/internal/application/auth"
)

// sessionChecker es el contrato mínimo que necesita el middleware para validar la sesión.
// Lo implementa *auth.SessionGuard.
type sessionChecker interface {
	Check(ctx context.Context, userID string) (auth.SessionUser, error)
}

// SessionMiddleware verifica en cada petición que el usuario del token siga existiendo
// y esté activo, y sustituye el rol del token por el vigente. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 UNAUTHORIZED → el perfil ya no existe.
//   - 403 ACCOUNT_INACTIVE → cuenta no-admin desactivada.
//   - 500 INTERNAL → fallo al consultar la DB.
func SessionMiddleware(checker sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return writeError(c, errMissingUser)
		}
		u, err := checker.Check(c.UserContext(), userID)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalRole, string(u.Role))
		return c.Next()
	}
}
