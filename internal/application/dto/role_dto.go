package dto

import "time"

// CreateRoleRequest alta de rol con su conjunto inicial de permisos.
type CreateRoleRequest struct {
	Name          string   `json:"nombre"`
	Description   string   `json:"descripcion"`
	PermissionIDs []string `json:"permisos_ids"`
}

// UpdateRoleRequest edición parcial; PermissionIDs no nil reemplaza el
// conjunto completo de permisos del rol.
type UpdateRoleRequest struct {
	Name          *string   `json:"nombre"`
	Description   *string   `json:"descripcion"`
	Active        *bool     `json:"activo"`
	PermissionIDs *[]string `json:"permisos_ids"`
}

// RoleResponse rol con sus conteos derivados.
type RoleResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"nombre"`
	Description     string    `json:"descripcion"`
	Active          bool      `json:"activo"`
	IsSystem        bool      `json:"es_sistema"`
	PermissionIDs   []string  `json:"permisos_ids"`
	PermissionCount int       `json:"cantidad_permisos"`
	UserCount       int       `json:"cantidad_usuarios"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RoleSummary objeto _info denormalizado para registros que referencian un rol.
type RoleSummary struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}
