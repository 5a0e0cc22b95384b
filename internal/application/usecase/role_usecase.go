package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

// RoleUseCase casos de uso CRUD para roles y su asignación de permisos.
type RoleUseCase struct {
	repo     repository.RoleRepository
	permRepo repository.PermissionRepository
	cache    auth.SnapshotCache
}

// NewRoleUseCase construye el caso de uso. cache puede ser nil.
func NewRoleUseCase(repo repository.RoleRepository, permRepo repository.PermissionRepository, cache auth.SnapshotCache) *RoleUseCase {
	return &RoleUseCase{repo: repo, permRepo: permRepo, cache: cache}
}

// Create crea un rol con su conjunto inicial de permisos. El nombre es único:
// un reintento con el mismo nombre recibe ErrDuplicate, nunca un estado
// ambiguo (la señal de éxito/fracaso del backend es confiable).
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.validatePermissionIDs(ctx, in.PermissionIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &entity.Role{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Active:        true,
		PermissionIDs: in.PermissionIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	role.PermissionCount = len(in.PermissionIDs)
	return toRoleResponse(role), nil
}

// GetByID obtiene un rol por ID.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return toRoleResponse(role), nil
}

// List lista roles con búsqueda libre y filtro por activo.
func (uc *RoleUseCase) List(ctx context.Context, search string, active *bool, limit, offset int) ([]dto.RoleResponse, int, error) {
	list, total, err := uc.repo.List(ctx, repository.RoleFilter{
		Search: textnorm.Fold(search),
		Active: active,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoleResponse(r))
	}
	return items, total, nil
}

// Update edita un rol. Los roles de sistema se rechazan. PermissionIDs no
// nil reemplaza el conjunto completo e invalida los snapshots de los
// usuarios del rol.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if role.IsSystem {
		return nil, domain.ErrSystemRole
	}

	if in.Name != nil && *in.Name != role.Name {
		dup, err := uc.repo.GetByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
		role.Name = *in.Name
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.Active != nil {
		role.Active = *in.Active
	}
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	if in.PermissionIDs != nil {
		if err := uc.validatePermissionIDs(ctx, *in.PermissionIDs); err != nil {
			return nil, err
		}
		if err := uc.repo.ReplacePermissions(ctx, role.ID, *in.PermissionIDs); err != nil {
			return nil, err
		}
		role.PermissionIDs = *in.PermissionIDs
		role.PermissionCount = len(*in.PermissionIDs)
	}

	uc.invalidateRoleUsers(ctx, role.ID)
	return toRoleResponse(role), nil
}

// Delete elimina un rol. Rechazado para roles de sistema o con usuarios.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	if role.IsSystem {
		return domain.ErrSystemRole
	}
	if role.UserCount > 0 {
		return domain.ErrRoleHasUsers
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *RoleUseCase) validatePermissionIDs(ctx context.Context, ids []string) error {
	for _, pid := range ids {
		p, err := uc.permRepo.GetByID(ctx, pid)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// invalidateRoleUsers descarta los snapshots cacheados de los usuarios del
// rol; fallos de cache no interrumpen la operación (el TTL los cubre).
func (uc *RoleUseCase) invalidateRoleUsers(ctx context.Context, roleID string) {
	if uc.cache == nil {
		return
	}
	userIDs, err := uc.repo.ListUserIDs(ctx, roleID)
	if err != nil || len(userIDs) == 0 {
		return
	}
	_ = uc.cache.Invalidate(ctx, userIDs...)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	if r == nil {
		return nil
	}
	permIDs := r.PermissionIDs
	if permIDs == nil {
		permIDs = []string{}
	}
	return &dto.RoleResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Active:          r.Active,
		IsSystem:        r.IsSystem,
		PermissionIDs:   permIDs,
		PermissionCount: r.PermissionCount,
		UserCount:       r.UserCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
