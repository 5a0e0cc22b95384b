package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// ModelFilter filtros de listado de modelos de equipo.
type ModelFilter struct {
	Search         string
	Brand          string
	Active         *bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// EquipmentModelRepository puerto de persistencia de modelos de equipo.
type EquipmentModelRepository interface {
	Create(ctx context.Context, m *entity.EquipmentModel) error
	GetByID(ctx context.Context, id string) (*entity.EquipmentModel, error)
	List(ctx context.Context, f ModelFilter) ([]*entity.EquipmentModel, int, error)
	Update(ctx context.Context, m *entity.EquipmentModel) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}
