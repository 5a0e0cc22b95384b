package auth

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

// Resolver resuelve el principal efectivo de un usuario: primero el cache de
// snapshots, con recaída a la base de datos. Es la única ruta por la que el
// middleware de guards y /auth/me obtienen permisos.
type Resolver struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
	cache    SnapshotCache
}

// NewResolver construye el resolver. cache puede ser nil (solo DB).
func NewResolver(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permRepo repository.PermissionRepository,
	cache SnapshotCache,
) *Resolver {
	return &Resolver{userRepo: userRepo, roleRepo: roleRepo, permRepo: permRepo, cache: cache}
}

// Resolve devuelve el principal del usuario. Usuarios inexistentes,
// eliminados, inactivos o bloqueados resuelven a ErrUnauthorized: un token
// vigente no mantiene viva una cuenta deshabilitada.
func (r *Resolver) Resolve(ctx context.Context, userID string) (authz.Principal, error) {
	if r.cache != nil {
		if snap, err := r.cache.Get(ctx, userID); err == nil && snap != nil {
			return snap.Principal(), nil
		}
		// errores de cache no bloquean: se resuelve contra la DB
	}

	snap, err := r.load(ctx, userID)
	if err != nil {
		return authz.Principal{}, err
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, userID, snap)
	}
	return snap.Principal(), nil
}

// Snapshot resuelve y devuelve el snapshot crudo (para /auth/me).
func (r *Resolver) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	if r.cache != nil {
		if snap, err := r.cache.Get(ctx, userID); err == nil && snap != nil {
			return snap, nil
		}
	}
	snap, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, userID, snap)
	}
	return snap, nil
}

func (r *Resolver) load(ctx context.Context, userID string) (*Snapshot, error) {
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanLogin() {
		return nil, domain.ErrUnauthorized
	}

	snap := &Snapshot{Superuser: user.IsSuperuser}
	if user.RoleID == "" {
		return snap, nil
	}

	role, err := r.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil || !role.Active {
		return snap, nil
	}
	snap.Role = role.Name

	perms, err := r.permRepo.ListPairsByRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range perms {
		if !p.Active {
			continue
		}
		snap.Pairs = append(snap.Pairs, authz.Pair{Resource: p.Resource, Action: p.Action})
	}
	return snap, nil
}
