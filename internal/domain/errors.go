package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidCredentials  = errors.New("código COTEL o contraseña incorrectos")
	ErrUserLocked          = errors.New("usuario bloqueado por intentos fallidos")
	ErrUserInactive        = errors.New("usuario inactivo")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrPermissionInUse     = errors.New("el permiso está asignado a uno o más roles")
	ErrSystemRole          = errors.New("los roles de sistema no pueden modificarse ni eliminarse")
	ErrRoleHasUsers        = errors.New("el rol tiene usuarios asignados")
	ErrLotHasEquipment     = errors.New("el lote tiene equipos registrados")
	ErrPasswordMismatch    = errors.New("la nueva contraseña y su confirmación no coinciden")
	ErrPasswordTooWeak     = errors.New("la contraseña no cumple la política mínima")
	ErrPasswordUnchanged   = errors.New("la nueva contraseña debe ser distinta de la anterior")
	ErrImportFileRejected  = errors.New("archivo de importación rechazado")
	ErrImportNotValidated  = errors.New("la importación requiere una validación sin errores")
)
