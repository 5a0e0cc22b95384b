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

// ModelUseCase casos de uso CRUD para modelos de equipo.
type ModelUseCase struct {
	repo repository.EquipmentModelRepository
}

// NewModelUseCase construye el caso de uso.
func NewModelUseCase(repo repository.EquipmentModelRepository) *ModelUseCase {
	return &ModelUseCase{repo: repo}
}

// Create crea un modelo de equipo. El costo unitario no puede ser negativo.
func (uc *ModelUseCase) Create(ctx context.Context, in dto.CreateModelRequest) (*dto.ModelResponse, error) {
	if in.Brand == "" || in.Name == "" || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.EquipmentModel{
		ID:          uuid.New().String(),
		Brand:       in.Brand,
		Name:        in.Name,
		Description: in.Description,
		UnitCost:    in.UnitCost,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toModelResponse(m), nil
}

// GetByID obtiene un modelo por ID.
func (uc *ModelUseCase) GetByID(ctx context.Context, id string) (*dto.ModelResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toModelResponse(m), nil
}

// List lista modelos con búsqueda libre y filtros.
func (uc *ModelUseCase) List(ctx context.Context, search, brand string, active *bool, includeDeleted bool, limit, offset int) ([]dto.ModelResponse, int, error) {
	list, total, err := uc.repo.List(ctx, repository.ModelFilter{
		Search:         textnorm.Fold(search),
		Brand:          brand,
		Active:         active,
		IncludeDeleted: includeDeleted,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ModelResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toModelResponse(m))
	}
	return items, total, nil
}

// Update edita un modelo.
func (uc *ModelUseCase) Update(ctx context.Context, id string, in dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Brand != nil {
		m.Brand = *in.Brand
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		m.UnitCost = *in.UnitCost
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toModelResponse(m), nil
}

// Delete marca el modelo como eliminado (borrado lógico).
func (uc *ModelUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Restore revierte el borrado lógico.
func (uc *ModelUseCase) Restore(ctx context.Context, id string) (*dto.ModelResponse, error) {
	if err := uc.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func toModelResponse(m *entity.EquipmentModel) *dto.ModelResponse {
	if m == nil {
		return nil
	}
	return &dto.ModelResponse{
		ID:          m.ID,
		Brand:       m.Brand,
		Name:        m.Name,
		Description: m.Description,
		UnitCost:    m.UnitCost,
		Active:      m.Active,
		Deleted:     m.Deleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
