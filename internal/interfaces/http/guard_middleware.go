package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// RequirePasswordOK bloquea a los usuarios con cambio de contraseña pendiente.
// Corre después del middleware de auth y antes del guard de permisos; las
// únicas rutas exentas son cambiar contraseña y cerrar sesión.
func RequirePasswordOK() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPasswordState(c) != entity.PasswordOK {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PASSWORD_CHANGE_REQUIRED",
				Message: "debe cambiar su contraseña antes de continuar",
			})
		}
		return c.Next()
	}
}

// RequireAccess evalúa los criterios declarados para la ruta contra el
// principal de la sesión. El superusuario pasa sin resolver permisos; para el
// resto el principal se resuelve vía cache con recaída a la base de datos.
func RequireAccess(resolver *auth.Resolver, criteria ...authz.Criterion) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsSuperuser(c) {
			return c.Next()
		}
		principal, err := resolver.Resolve(c.Context(), GetUserID(c))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión inválida",
			})
		}
		if !authz.Evaluate(principal, criteria) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permisos para esta operación",
			})
		}
		return c.Next()
	}
}
