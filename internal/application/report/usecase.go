// Package report arma el reporte de inventario por almacén y delega el
// renderizado PDF al adaptador de infraestructura.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

// LotLine línea del reporte: un lote con su conteo de equipos y costo estimado.
type LotLine struct {
	LotCode    string
	ReceivedAt string
	Units      int
	Cost       decimal.Decimal // suma de costos unitarios por modelo
}

// InventoryReport datos listos para renderizar.
type InventoryReport struct {
	Warehouse  *entity.Warehouse
	Lines      []LotLine
	TotalUnits int
	TotalCost  decimal.Decimal
}

// PDFGenerator puerto de renderizado (maroto en producción).
type PDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, r *InventoryReport) ([]byte, error)
}

// UseCase genera el reporte de inventario de un almacén.
type UseCase struct {
	warehouseRepo repository.WarehouseRepository
	lotRepo       repository.LotRepository
	modelRepo     repository.EquipmentModelRepository
	equipmentRepo repository.EquipmentRepository
	pdf           PDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	warehouseRepo repository.WarehouseRepository,
	lotRepo repository.LotRepository,
	modelRepo repository.EquipmentModelRepository,
	equipmentRepo repository.EquipmentRepository,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{
		warehouseRepo: warehouseRepo,
		lotRepo:       lotRepo,
		modelRepo:     modelRepo,
		equipmentRepo: equipmentRepo,
		pdf:           pdf,
	}
}

// InventoryPDF genera el PDF de inventario del almacén indicado.
func (uc *UseCase) InventoryPDF(ctx context.Context, warehouseID string) ([]byte, error) {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.Deleted {
		return nil, domain.ErrNotFound
	}

	lots, _, err := uc.lotRepo.List(ctx, repository.LotFilter{
		WarehouseID: warehouseID,
		Limit:       1000,
	})
	if err != nil {
		return nil, err
	}

	equipment, err := uc.equipmentRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	// costo unitario por modelo, cargado una vez
	costByModel := make(map[string]decimal.Decimal)
	unitsByLot := make(map[string]int, len(lots))
	costByLot := make(map[string]decimal.Decimal, len(lots))
	for _, eq := range equipment {
		unitsByLot[eq.LotID]++
		cost, ok := costByModel[eq.ModelID]
		if !ok {
			model, err := uc.modelRepo.GetByID(ctx, eq.ModelID)
			if err != nil {
				return nil, err
			}
			if model != nil {
				cost = model.UnitCost
			}
			costByModel[eq.ModelID] = cost
		}
		costByLot[eq.LotID] = costByLot[eq.LotID].Add(cost)
	}

	rep := &InventoryReport{Warehouse: warehouse}
	for _, lot := range lots {
		line := LotLine{
			LotCode:    lot.Code,
			ReceivedAt: lot.ReceivedAt.Format("02/01/2006"),
			Units:      unitsByLot[lot.ID],
			Cost:       costByLot[lot.ID],
		}
		rep.Lines = append(rep.Lines, line)
		rep.TotalUnits += line.Units
		rep.TotalCost = rep.TotalCost.Add(line.Cost)
	}

	out, err := uc.pdf.GenerateInventoryPDF(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}
	return out, nil
}
