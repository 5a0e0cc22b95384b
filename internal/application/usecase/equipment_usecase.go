package usecase

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

// EquipmentUseCase consultas de equipos individuales. El alta de equipos solo
// ocurre vía importación masiva, por eso aquí no hay Create.
type EquipmentUseCase struct {
	repo      repository.EquipmentRepository
	lotRepo   repository.LotRepository
	modelRepo repository.EquipmentModelRepository
}

// NewEquipmentUseCase construye el caso de uso de equipos.
func NewEquipmentUseCase(
	repo repository.EquipmentRepository,
	lotRepo repository.LotRepository,
	modelRepo repository.EquipmentModelRepository,
) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, lotRepo: lotRepo, modelRepo: modelRepo}
}

// GetByID obtiene un equipo por ID.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id string) (*dto.EquipmentResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, e), nil
}

// ListByLot lista los equipos de un lote existente.
func (uc *EquipmentUseCase) ListByLot(ctx context.Context, lotID string, limit, offset int) ([]dto.EquipmentResponse, int, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, 0, err
	}
	if lot == nil || lot.Deleted {
		return nil, 0, domain.ErrNotFound
	}
	items, total, err := uc.repo.ListByLot(ctx, lotID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EquipmentResponse, 0, len(items))
	for _, e := range items {
		out = append(out, *uc.toResponse(ctx, e))
	}
	return out, total, nil
}

func (uc *EquipmentUseCase) toResponse(ctx context.Context, e *entity.Equipment) *dto.EquipmentResponse {
	resp := &dto.EquipmentResponse{
		ID:           e.ID,
		LotID:        e.LotID,
		ModelID:      e.ModelID,
		SerialNumber: e.SerialNumber,
		MACAddress:   e.MACAddress,
		InternalCode: e.InternalCode,
		AuxCode:      e.AuxCode,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	// _info denormalizado, best effort
	if model, err := uc.modelRepo.GetByID(ctx, e.ModelID); err == nil && model != nil {
		resp.ModelInfo = &dto.ModelSummary{ID: model.ID, Brand: model.Brand, Name: model.Name}
	}
	return resp
}
