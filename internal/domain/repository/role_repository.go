package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// RoleFilter filtros de listado de roles.
type RoleFilter struct {
	Search string
	Active *bool
	Limit  int
	Offset int
}

// RoleRepository puerto de persistencia de roles.
// PermissionCount y UserCount son derivados (COUNT sobre las tablas de
// asignación) y se completan en las lecturas.
type RoleRepository interface {
	Create(ctx context.Context, r *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context, f RoleFilter) ([]*entity.Role, int, error)
	Update(ctx context.Context, r *entity.Role) error
	Delete(ctx context.Context, id string) error
	// ReplacePermissions reemplaza el conjunto de permisos del rol (transaccional).
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	// ListUserIDs devuelve los usuarios con el rol asignado (invalidación de cache).
	ListUserIDs(ctx context.Context, roleID string) ([]string, error)
}
