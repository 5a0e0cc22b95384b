package dto

import "time"

// CreateUserRequest alta de usuario. La contraseña inicial es el código COTEL
// y el usuario queda con cambio de contraseña obligatorio.
type CreateUserRequest struct {
	CotelCode   int    `json:"cotel_code"`
	Names       string `json:"nombres"`
	Surnames    string `json:"apellidos"`
	RoleID      string `json:"rol"`
	IsSuperuser bool   `json:"es_superusuario"`
}

// UpdateUserRequest edición parcial de usuario.
type UpdateUserRequest struct {
	Names       *string `json:"nombres"`
	Surnames    *string `json:"apellidos"`
	RoleID      *string `json:"rol"`
	IsActive    *bool   `json:"activo"`
	IsSuperuser *bool   `json:"es_superusuario"`
}

// UserResponse usuario con el id crudo del rol y su objeto _info denormalizado.
type UserResponse struct {
	ID               string       `json:"id"`
	CotelCode        int          `json:"cotel_code"`
	Names            string       `json:"nombres"`
	Surnames         string       `json:"apellidos"`
	RoleID           string       `json:"rol,omitempty"`
	RoleInfo         *RoleSummary `json:"rol_info,omitempty"`
	IsActive         bool         `json:"activo"`
	IsSuperuser      bool         `json:"es_superusuario"`
	IsLocked         bool         `json:"bloqueado"`
	PasswordState    string       `json:"estado_password"`
	FailedLoginCount int          `json:"intentos_fallidos"`
	Deleted          bool         `json:"eliminado"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
