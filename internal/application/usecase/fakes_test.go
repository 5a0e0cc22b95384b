package usecase_test

import (
	"context"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Solo implementan los
// métodos que los casos de uso bajo prueba tocan; el resto queda en la
// interfaz embebida y entra en pánico si se lo llama.

type memPermRepo struct {
	repository.PermissionRepository
	perms      map[string]*entity.Permission
	deleted    []string
	lastFilter repository.PermissionFilter
}

func newMemPermRepo(perms ...*entity.Permission) *memPermRepo {
	m := map[string]*entity.Permission{}
	for _, p := range perms {
		cp := *p
		m[p.ID] = &cp
	}
	return &memPermRepo{perms: m}
}

func (f *memPermRepo) Create(_ context.Context, p *entity.Permission) error {
	cp := *p
	f.perms[p.ID] = &cp
	return nil
}

func (f *memPermRepo) GetByID(_ context.Context, id string) (*entity.Permission, error) {
	if p, ok := f.perms[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *memPermRepo) GetByPair(_ context.Context, resource string, action entity.Action) (*entity.Permission, error) {
	for _, p := range f.perms {
		if p.Resource == resource && p.Action == action {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memPermRepo) Update(_ context.Context, p *entity.Permission) error {
	cp := *p
	f.perms[p.ID] = &cp
	return nil
}

func (f *memPermRepo) List(_ context.Context, filter repository.PermissionFilter) ([]*entity.Permission, int, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *memPermRepo) Delete(_ context.Context, id string) error {
	delete(f.perms, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type memRoleRepo struct {
	repository.RoleRepository
	roles      map[string]*entity.Role
	userIDs    map[string][]string
	replaced   map[string][]string
	deleted    []string
	lastFilter repository.RoleFilter
}

func newMemRoleRepo(roles ...*entity.Role) *memRoleRepo {
	m := map[string]*entity.Role{}
	for _, r := range roles {
		cp := *r
		m[r.ID] = &cp
	}
	return &memRoleRepo{roles: m, userIDs: map[string][]string{}, replaced: map[string][]string{}}
}

func (f *memRoleRepo) Create(_ context.Context, r *entity.Role) error {
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *memRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	if r, ok := f.roles[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *memRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memRoleRepo) List(_ context.Context, filter repository.RoleFilter) ([]*entity.Role, int, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *memRoleRepo) Update(_ context.Context, r *entity.Role) error {
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *memRoleRepo) Delete(_ context.Context, id string) error {
	delete(f.roles, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *memRoleRepo) ReplacePermissions(_ context.Context, roleID string, permissionIDs []string) error {
	f.replaced[roleID] = permissionIDs
	return nil
}

func (f *memRoleRepo) ListUserIDs(_ context.Context, roleID string) ([]string, error) {
	return f.userIDs[roleID], nil
}

type memUserRepo struct {
	repository.UserRepository
	users    map[string]*entity.User
	restored []string
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := map[string]*entity.User{}
	for _, u := range users {
		cp := *u
		m[u.ID] = &cp
	}
	return &memUserRepo{users: m}
}

func (f *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *memUserRepo) GetByCotelCode(_ context.Context, code int) (*entity.User, error) {
	for _, u := range f.users {
		if u.CotelCode == code && !u.Deleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *memUserRepo) SoftDelete(_ context.Context, id string) error {
	if u, ok := f.users[id]; ok {
		u.Deleted = true
	}
	return nil
}

func (f *memUserRepo) Restore(_ context.Context, id string) error {
	if u, ok := f.users[id]; ok {
		u.Deleted = false
	}
	f.restored = append(f.restored, id)
	return nil
}

// memCache registra invalidaciones de snapshots.
type memCache struct {
	invalidated []string
}

var _ auth.SnapshotCache = (*memCache)(nil)

func (f *memCache) Get(_ context.Context, _ string) (*auth.Snapshot, error) { return nil, nil }

func (f *memCache) Set(_ context.Context, _ string, _ *auth.Snapshot) error { return nil }

func (f *memCache) Invalidate(_ context.Context, userIDs ...string) error {
	f.invalidated = append(f.invalidated, userIDs...)
	return nil
}
