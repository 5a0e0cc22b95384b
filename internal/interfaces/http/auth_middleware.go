package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/pkg/jwt"
)

// Locals keys para los datos de sesión en Fiber.
const (
	LocalUserID        = "user_id"
	LocalCotelCode     = "cotel_code"
	LocalSuperuser     = "superuser"
	LocalPasswordState = "password_state"
)

// AuthMiddleware valida el Bearer Token JWT y extrae los datos de sesión a
// c.Locals. Es el primer guard de la cadena: sin token válido nada más corre.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCotelCode, claims.CotelCode)
		c.Locals(LocalSuperuser, claims.Superuser)
		c.Locals(LocalPasswordState, claims.PasswordState)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsSuperuser devuelve la bandera de superusuario de la sesión.
func IsSuperuser(c *fiber.Ctx) bool {
	v := c.Locals(LocalSuperuser)
	if v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetPasswordState devuelve el estado de contraseña que viajó en el token.
func GetPasswordState(c *fiber.Ctx) string {
	v := c.Locals(LocalPasswordState)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
