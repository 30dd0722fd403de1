package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// permissionChecker contrato mínimo para el middleware. Lo implementa *authz.Resolver.
type permissionChecker interface {
	HasAny(ctx context.Context, userID int64, names ...string) bool
}

// RequirePermission deja pasar si el usuario de la sesión tiene al menos uno de los permisos.
// Debe usarse DESPUÉS de AuthMiddleware. Los casos de uso vuelven a verificar; esto solo corta antes.
//
//   - 401 si no hay user_id en el contexto.
//   - 403 si no tiene ninguno de los permisos (o si falló la consulta: el resolver deniega).
func RequirePermission(checker permissionChecker, names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		if !checker.HasAny(c.UserContext(), userID, names...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permiso para esta operación",
			})
		}
		return c.Next()
	}
}
