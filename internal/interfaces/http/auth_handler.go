package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
)

// AuthHandler maneja login, sesión y el endpoint de consultas de acceso.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	resolver *auth.Resolver
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, resolver *auth.Resolver) *AuthHandler {
	return &AuthHandler{uc: uc, resolver: resolver}
}

// Login godoc
// @Summary      Iniciar sesión con código COTEL y contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "cotel_code, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.CotelCode <= 0 || in.Password == "" {
		return badRequest(c, "cotel_code y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password, confirm_password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangePassword(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (invalida el snapshot de permisos)
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Identidad de la sesión con sus permisos efectivos
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Can godoc
// @Summary      Evaluar consultas de acceso en lote
// @Description  Cada consulta es una lista de criterios; el veredicto sigue
// @Description  las mismas reglas que los guards de ruta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CanRequest  true  "consultas"
// @Success      200   {object}  dto.CanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/can [post]
func (h *AuthHandler) Can(c *fiber.Ctx) error {
	var in dto.CanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	principal, err := h.resolver.Resolve(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	out := dto.CanResponse{Results: make([]bool, 0, len(in.Checks))}
	for _, check := range in.Checks {
		criteria, err := auth.ParseCriteria(check)
		if err != nil {
			return fail(c, err)
		}
		out.Results = append(out.Results, authz.Evaluate(principal, criteria))
	}
	return c.JSON(out)
}
