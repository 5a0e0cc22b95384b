package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// LotFilter filtros de listado de lotes.
type LotFilter struct {
	Search         string
	WarehouseID    string
	Active         *bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// LotRepository puerto de persistencia de lotes.
// EquipmentCount se deriva de la tabla de equipos.
type LotRepository interface {
	Create(ctx context.Context, l *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	List(ctx context.Context, f LotFilter) ([]*entity.Lot, int, error)
	Update(ctx context.Context, l *entity.Lot) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}
