package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	CotelCode int    `json:"cotel_code"`
	Password  string `json:"password"`
}

// LoginResponse token emitido + usuario + bandera de cambio de contraseña.
type LoginResponse struct {
	AccessToken            string       `json:"access_token"`
	User                   UserResponse `json:"user"`
	RequiresPasswordChange bool         `json:"requires_password_change"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// MeResponse identidad de la sesión + permisos planos para que el cliente
// ejecute localmente el mismo evaluador.
type MeResponse struct {
	User        UserResponse     `json:"user"`
	Superuser   bool             `json:"superuser"`
	Role        string           `json:"rol"`
	Permissions []PermissionPair `json:"permisos"`
}

// CriterionRequest criterio de acceso etiquetado para /auth/can.
// Tipo: "recurso" | "rol" | "roles" | "permisos".
type CriterionRequest struct {
	Type       string           `json:"tipo"`
	Resource   string           `json:"recurso,omitempty"`
	Action     string           `json:"accion,omitempty"`
	Role       string           `json:"rol,omitempty"`
	Roles      []string         `json:"roles,omitempty"`
	Pairs      []PermissionPair `json:"permisos,omitempty"`
	RequireAll bool             `json:"requiere_todos,omitempty"`
}

// CanRequest lote de consultas de acceso.
type CanRequest struct {
	Checks [][]CriterionRequest `json:"consultas"`
}

// CanResponse veredicto por consulta, en el mismo orden.
type CanResponse struct {
	Results []bool `json:"resultados"`
}
