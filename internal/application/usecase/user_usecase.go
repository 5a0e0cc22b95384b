package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

// UserUseCase casos de uso CRUD para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
	cache    auth.SnapshotCache
}

// NewUserUseCase construye el caso de uso. cache puede ser nil.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository, cache auth.SnapshotCache) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo, cache: cache}
}

// Create crea un usuario con contraseña inicial = código COTEL y cambio de
// contraseña obligatorio en el primer ingreso.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.CotelCode <= 0 || in.Names == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCotelCode(ctx, in.CotelCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.validateRoleID(ctx, in.RoleID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(auth.InitialPassword(in.CotelCode)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		CotelCode:     in.CotelCode,
		Names:         in.Names,
		Surnames:      in.Surnames,
		RoleID:        in.RoleID,
		PasswordHash:  string(hash),
		IsActive:      true,
		IsSuperuser:   in.IsSuperuser,
		PasswordState: entity.PasswordChangeRequired,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, user)
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, user)
}

// List lista usuarios con búsqueda libre (insensible a acentos) y filtros
// por rol, activo e inclusión de eliminados.
func (uc *UserUseCase) List(ctx context.Context, search, roleID string, active *bool, includeDeleted bool, limit, offset int) ([]dto.UserResponse, int, error) {
	list, total, err := uc.repo.List(ctx, repository.UserFilter{
		Search:         textnorm.Fold(search),
		RoleID:         roleID,
		Active:         active,
		IncludeDeleted: includeDeleted,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp, err := uc.toResponse(ctx, u)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *resp)
	}
	return items, total, nil
}

// Update edita un usuario. Cambios de rol o de estado invalidan su snapshot.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	permsChanged := false
	if in.Names != nil {
		user.Names = *in.Names
	}
	if in.Surnames != nil {
		user.Surnames = *in.Surnames
	}
	if in.RoleID != nil && *in.RoleID != user.RoleID {
		if err := uc.validateRoleID(ctx, *in.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *in.RoleID
		permsChanged = true
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		user.IsActive = *in.IsActive
		permsChanged = true
	}
	if in.IsSuperuser != nil && *in.IsSuperuser != user.IsSuperuser {
		user.IsSuperuser = *in.IsSuperuser
		permsChanged = true
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if permsChanged {
		uc.invalidate(ctx, user.ID)
	}
	return uc.toResponse(ctx, user)
}

// Unlock desbloquea la cuenta y reinicia el contador de intentos fallidos.
func (uc *UserUseCase) Unlock(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.IsLocked = false
	user.FailedLoginCount = 0
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, user)
}

// ResetPassword restablece la contraseña al código COTEL y obliga a
// cambiarla en el siguiente ingreso.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(auth.InitialPassword(user.CotelCode)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.PasswordState = entity.PasswordResetRequired
	user.FailedLoginCount = 0
	user.IsLocked = false
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, user.ID)
	return uc.toResponse(ctx, user)
}

// Delete marca el usuario como eliminado (borrado lógico).
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// Restore revierte el borrado lógico.
func (uc *UserUseCase) Restore(ctx context.Context, id string) (*dto.UserResponse, error) {
	if err := uc.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, user)
}

func (uc *UserUseCase) validateRoleID(ctx context.Context, roleID string) error {
	if roleID == "" {
		return nil
	}
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *UserUseCase) invalidate(ctx context.Context, userID string) {
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, userID)
	}
}

func (uc *UserUseCase) toResponse(ctx context.Context, u *entity.User) (*dto.UserResponse, error) {
	var roleInfo *dto.RoleSummary
	if u.RoleID != "" {
		role, err := uc.roleRepo.GetByID(ctx, u.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			roleInfo = &dto.RoleSummary{ID: role.ID, Name: role.Name}
		}
	}
	return &dto.UserResponse{
		ID:               u.ID,
		CotelCode:        u.CotelCode,
		Names:            u.Names,
		Surnames:         u.Surnames,
		RoleID:           u.RoleID,
		RoleInfo:         roleInfo,
		IsActive:         u.IsActive,
		IsSuperuser:      u.IsSuperuser,
		IsLocked:         u.IsLocked,
		PasswordState:    u.PasswordState,
		FailedLoginCount: u.FailedLoginCount,
		Deleted:          u.Deleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}, nil
}
