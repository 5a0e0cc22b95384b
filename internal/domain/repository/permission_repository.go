package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// PermissionFilter filtros de listado de permisos.
type PermissionFilter struct {
	Search   string // ya normalizado por el caso de uso
	Resource string
	Action   entity.Action
	Active   *bool
	Limit    int
	Offset   int
}

// PermissionRepository puerto de persistencia de permisos.
// InUse se deriva de la tabla de asignación rol-permiso, nunca se almacena.
type PermissionRepository interface {
	Create(ctx context.Context, p *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	GetByPair(ctx context.Context, resource string, action entity.Action) (*entity.Permission, error)
	List(ctx context.Context, f PermissionFilter) ([]*entity.Permission, int, error)
	Update(ctx context.Context, p *entity.Permission) error
	Delete(ctx context.Context, id string) error
	// ListPairsByRole devuelve los pares activos asignados a un rol.
	ListPairsByRole(ctx context.Context, roleID string) ([]entity.Permission, error)
}
