package entity

import "time"

// Estados de contraseña de un usuario.
const (
	PasswordOK             = "ok"
	PasswordChangeRequired = "change_required"
	PasswordResetRequired  = "reset_required"
)

// MaxFailedLogins intentos fallidos consecutivos antes de bloquear la cuenta.
const MaxFailedLogins = 5

// User representa un funcionario del sistema, identificado por su código COTEL.
// Invariante: un superusuario pasa todos los chequeos de permisos sin importar
// el conjunto de permisos de su rol.
type User struct {
	ID               string
	CotelCode        int
	Names            string
	Surnames         string
	RoleID           string // vacío = sin rol asignado
	PasswordHash     string // bcrypt, nunca plano después de persistir
	IsActive         bool
	IsSuperuser      bool
	IsLocked         bool
	PasswordState    string // PasswordOK | PasswordChangeRequired | PasswordResetRequired
	FailedLoginCount int
	Deleted          bool
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName nombre para despliegue.
func (u *User) FullName() string {
	if u.Surnames == "" {
		return u.Names
	}
	return u.Names + " " + u.Surnames
}

// CanLogin reporta si el usuario puede iniciar sesión (no valida la contraseña).
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsLocked && !u.Deleted
}
