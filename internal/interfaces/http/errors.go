package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
)

// fail mapea errores de dominio al status y código de error HTTP.
// Los errores no reconocidos se responden como 500 sin filtrar detalles.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrPasswordTooWeak),
		errors.Is(err, domain.ErrPasswordUnchanged):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrImportFileRejected):
		return respond(c, fiber.StatusBadRequest, "IMPORT_FILE_REJECTED", err)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrUserLocked):
		return respond(c, fiber.StatusForbidden, "USER_LOCKED", err)
	case errors.Is(err, domain.ErrUserInactive):
		return respond(c, fiber.StatusForbidden, "USER_INACTIVE", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrPermissionInUse):
		return respond(c, fiber.StatusConflict, "PERMISSION_IN_USE", err)
	case errors.Is(err, domain.ErrSystemRole):
		return respond(c, fiber.StatusConflict, "SYSTEM_ROLE", err)
	case errors.Is(err, domain.ErrRoleHasUsers):
		return respond(c, fiber.StatusConflict, "ROLE_HAS_USERS", err)
	case errors.Is(err, domain.ErrLotHasEquipment):
		return respond(c, fiber.StatusConflict, "LOT_HAS_EQUIPMENT", err)
	case errors.Is(err, domain.ErrImportNotValidated):
		return respond(c, fiber.StatusConflict, "IMPORT_NOT_VALIDATED", err)
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "error interno",
		})
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// badRequest respuesta 400 con código VALIDATION y mensaje propio.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}

// invalidBody respuesta 400 por cuerpo no parseable.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
