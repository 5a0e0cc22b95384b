package repository

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// EquipmentRepository puerto de persistencia de equipos individuales.
type EquipmentRepository interface {
	CreateBatch(ctx context.Context, items []*entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	// ExistingSerials devuelve cuáles de los seriales dados ya existen.
	ExistingSerials(ctx context.Context, serials []string) (map[string]bool, error)
	ListByLot(ctx context.Context, lotID string, limit, offset int) ([]*entity.Equipment, int, error)
	// ListByWarehouse recorre lotes del almacén (reporte de inventario).
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Equipment, error)
	CountByLot(ctx context.Context, lotID string) (int, error)
}
