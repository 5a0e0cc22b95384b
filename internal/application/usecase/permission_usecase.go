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

// PermissionUseCase casos de uso CRUD para permisos.
type PermissionUseCase struct {
	repo repository.PermissionRepository
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(repo repository.PermissionRepository) *PermissionUseCase {
	return &PermissionUseCase{repo: repo}
}

// Create crea un permiso. El par (recurso, acción) es único e inmutable.
func (uc *PermissionUseCase) Create(ctx context.Context, in dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	action := entity.Action(in.Action)
	if in.Resource == "" || !action.Valid() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByPair(ctx, in.Resource, action)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	p := &entity.Permission{
		ID:          uuid.New().String(),
		Resource:    in.Resource,
		Action:      action,
		Description: in.Description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPermissionResponse(p), nil
}

// GetByID obtiene un permiso por ID.
func (uc *PermissionUseCase) GetByID(ctx context.Context, id string) (*dto.PermissionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPermissionResponse(p), nil
}

// List lista permisos con búsqueda libre y filtros por recurso/acción/activo.
func (uc *PermissionUseCase) List(ctx context.Context, search, resource, action string, active *bool, limit, offset int) ([]dto.PermissionResponse, int, error) {
	f := repository.PermissionFilter{
		Search:   textnorm.Fold(search),
		Resource: resource,
		Active:   active,
		Limit:    limit,
		Offset:   offset,
	}
	if action != "" {
		a := entity.Action(action)
		if !a.Valid() {
			return nil, 0, domain.ErrInvalidInput
		}
		f.Action = a
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPermissionResponse(p))
	}
	return items, total, nil
}

// Update edita descripción y bandera de activo. La identidad (recurso,
// acción) nunca cambia; un permiso en uso sigue siendo editable en estos
// dos campos.
func (uc *PermissionUseCase) Update(ctx context.Context, id string, in dto.UpdatePermissionRequest) (*dto.PermissionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPermissionResponse(p), nil
}

// Delete elimina un permiso. Rechazado mientras esté asignado a algún rol.
func (uc *PermissionUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.InUse {
		return domain.ErrPermissionInUse
	}
	return uc.repo.Delete(ctx, id)
}

func toPermissionResponse(p *entity.Permission) *dto.PermissionResponse {
	if p == nil {
		return nil
	}
	return &dto.PermissionResponse{
		ID:          p.ID,
		Resource:    p.Resource,
		Action:      string(p.Action),
		Description: p.Description,
		Active:      p.Active,
		InUse:       p.InUse,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
