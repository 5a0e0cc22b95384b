package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

// LotUseCase casos de uso CRUD para lotes de material.
type LotUseCase struct {
	repo          repository.LotRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository, warehouseRepo repository.WarehouseRepository) *LotUseCase {
	return &LotUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea un lote en un almacén activo.
func (uc *LotUseCase) Create(ctx context.Context, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if in.Code == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.Deleted || !warehouse.Active {
		return nil, domain.ErrInvalidInput
	}

	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	now := time.Now()
	lot := &entity.Lot{
		ID:          uuid.New().String(),
		Code:        in.Code,
		WarehouseID: in.WarehouseID,
		Description: in.Description,
		ReceivedAt:  receivedAt,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, lot)
}

// GetByID obtiene un lote por ID.
func (uc *LotUseCase) GetByID(ctx context.Context, id string) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, lot)
}

// List lista lotes con búsqueda libre y filtros.
func (uc *LotUseCase) List(ctx context.Context, search, warehouseID string, active *bool, includeDeleted bool, limit, offset int) ([]dto.LotResponse, int, error) {
	list, total, err := uc.repo.List(ctx, repository.LotFilter{
		Search:         textnorm.Fold(search),
		WarehouseID:    warehouseID,
		Active:         active,
		IncludeDeleted: includeDeleted,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.LotResponse, 0, len(list))
	for _, l := range list {
		resp, err := uc.toResponse(ctx, l)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *resp)
	}
	return items, total, nil
}

// Update edita un lote.
func (uc *LotUseCase) Update(ctx context.Context, id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if in.WarehouseID != nil && *in.WarehouseID != lot.WarehouseID {
		warehouse, err := uc.warehouseRepo.GetByID(ctx, *in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil || warehouse.Deleted {
			return nil, domain.ErrInvalidInput
		}
		lot.WarehouseID = *in.WarehouseID
	}
	if in.Code != nil {
		lot.Code = *in.Code
	}
	if in.Description != nil {
		lot.Description = *in.Description
	}
	if in.ReceivedAt != nil {
		lot.ReceivedAt = *in.ReceivedAt
	}
	if in.Active != nil {
		lot.Active = *in.Active
	}
	lot.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, lot); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, lot)
}

// Delete marca el lote como eliminado. Rechazado mientras tenga equipos.
func (uc *LotUseCase) Delete(ctx context.Context, id string) error {
	lot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if lot.EquipmentCount > 0 {
		return domain.ErrLotHasEquipment
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Restore revierte el borrado lógico.
func (uc *LotUseCase) Restore(ctx context.Context, id string) (*dto.LotResponse, error) {
	if err := uc.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func (uc *LotUseCase) toResponse(ctx context.Context, l *entity.Lot) (*dto.LotResponse, error) {
	var info *dto.WarehouseSummary
	if l.WarehouseID != "" {
		w, err := uc.warehouseRepo.GetByID(ctx, l.WarehouseID)
		if err != nil {
			return nil, err
		}
		if w != nil {
			info = &dto.WarehouseSummary{ID: w.ID, Code: w.Code, Name: w.Name}
		}
	}
	return &dto.LotResponse{
		ID:             l.ID,
		Code:           l.Code,
		WarehouseID:    l.WarehouseID,
		WarehouseInfo:  info,
		Description:    l.Description,
		ReceivedAt:     l.ReceivedAt,
		EquipmentCount: l.EquipmentCount,
		Active:         l.Active,
		Deleted:        l.Deleted,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}, nil
}
