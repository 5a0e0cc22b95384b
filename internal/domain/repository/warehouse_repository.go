package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// WarehouseFilter filtros de listado de almacenes.
type WarehouseFilter struct {
	Search         string
	Active         *bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// WarehouseRepository puerto de persistencia de almacenes.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context, f WarehouseFilter) ([]*entity.Warehouse, int, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}
