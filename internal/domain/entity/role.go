package entity

import "time"

// Role agrupa permisos y se asigna a usuarios.
// Los roles de sistema (IsSystem) no se editan ni eliminan desde la API.
// Un rol con UserCount > 0 no puede eliminarse.
type Role struct {
	ID              string
	Name            string
	Description     string
	Active          bool
	IsSystem        bool
	PermissionIDs   []string
	PermissionCount int // derivado
	UserCount       int // derivado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
