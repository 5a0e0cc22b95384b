package entity

import "time"

// Permission representa una tupla (recurso, acción) del modelo RBAC.
// La identidad (Resource, Action) es inmutable después de creada; solo
// Description y Active se pueden editar. InUse es derivado: true cuando el
// permiso está asignado a al menos un rol, y bloquea su eliminación.
type Permission struct {
	ID          string
	Resource    string // "usuarios", "roles", "permisos", "almacenes", "lotes", "modelos", "equipos", "reportes"
	Action      Action
	Description string
	Active      bool
	InUse       bool // derivado, nunca persistido
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
