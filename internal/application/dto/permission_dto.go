package dto

import "time"

// CreatePermissionRequest alta de permiso. Recurso y acción son inmutables
// después de la creación.
type CreatePermissionRequest struct {
	Resource    string `json:"recurso"`
	Action      string `json:"accion"`
	Description string `json:"descripcion"`
	Active      *bool  `json:"activo"`
}

// UpdatePermissionRequest solo descripción y bandera de activo son editables.
type UpdatePermissionRequest struct {
	Description *string `json:"descripcion"`
	Active      *bool   `json:"activo"`
}

// PermissionResponse permiso tal como lo consume el panel.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Resource    string    `json:"recurso"`
	Action      string    `json:"accion"`
	Description string    `json:"descripcion"`
	Active      bool      `json:"activo"`
	InUse       bool      `json:"en_uso"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
