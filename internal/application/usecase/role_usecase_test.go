package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRoleCreate_Exitoso(t *testing.T) {
	roles := newMemRoleRepo()
	perms := newMemPermRepo(&entity.Permission{ID: "perm-1", Resource: "equipos", Action: entity.ActionRead})
	uc := usecase.NewRoleUseCase(roles, perms, nil)

	out, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:          "Inventario",
		Description:   "Gestión de inventario",
		PermissionIDs: []string{"perm-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Inventario", out.Name)
	assert.True(t, out.Active)
	assert.Equal(t, 1, out.PermissionCount)
	assert.NotNil(t, roles.roles[out.ID])
}

func TestRoleCreate_NombreDuplicado(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Inventario", Active: true})
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{Name: "Inventario"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRoleCreate_PermisoInexistente(t *testing.T) {
	uc := usecase.NewRoleUseCase(newMemRoleRepo(), newMemPermRepo(), nil)

	_, err := uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:          "Inventario",
		PermissionIDs: []string{"no-existe"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoleUpdate_RolDeSistema(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Administrador", Active: true, IsSystem: true})
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	_, err := uc.Update(context.Background(), "role-1", dto.UpdateRoleRequest{Name: strPtr("Otro")})
	assert.ErrorIs(t, err, domain.ErrSystemRole)
}

func TestRoleUpdate_ReemplazaPermisosEInvalidaUsuarios(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Inventario", Active: true})
	roles.userIDs["role-1"] = []string{"user-1", "user-2"}
	perms := newMemPermRepo(
		&entity.Permission{ID: "perm-1", Resource: "equipos", Action: entity.ActionRead},
		&entity.Permission{ID: "perm-2", Resource: "equipos", Action: entity.ActionCreate},
	)
	cache := &memCache{}
	uc := usecase.NewRoleUseCase(roles, perms, cache)

	newSet := []string{"perm-1", "perm-2"}
	out, err := uc.Update(context.Background(), "role-1", dto.UpdateRoleRequest{PermissionIDs: &newSet})
	require.NoError(t, err)

	assert.Equal(t, newSet, roles.replaced["role-1"], "el conjunto se reemplaza completo")
	assert.Equal(t, 2, out.PermissionCount)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, cache.invalidated,
		"los snapshots de los usuarios del rol se descartan")
}

func TestRoleList_PliegaElTermino(t *testing.T) {
	roles := newMemRoleRepo()
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	// el término llega al repositorio ya plegado, igual que la columna
	// search_text que este almacena
	_, _, err := uc.List(context.Background(), "Administración", nil, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "administracion", roles.lastFilter.Search)
}

func TestRoleDelete_Exitoso(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Inventario", Active: true})
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	require.NoError(t, uc.Delete(context.Background(), "role-1"))
	assert.Contains(t, roles.deleted, "role-1")
}

func TestRoleDelete_RolDeSistema(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Administrador", Active: true, IsSystem: true})
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	assert.ErrorIs(t, uc.Delete(context.Background(), "role-1"), domain.ErrSystemRole)
}

func TestRoleDelete_ConUsuariosAsignados(t *testing.T) {
	roles := newMemRoleRepo(&entity.Role{ID: "role-1", Name: "Inventario", Active: true, UserCount: 3})
	uc := usecase.NewRoleUseCase(roles, newMemPermRepo(), nil)

	assert.ErrorIs(t, uc.Delete(context.Background(), "role-1"), domain.ErrRoleHasUsers)
	assert.Empty(t, roles.deleted)
}

func TestRoleDelete_NoExiste(t *testing.T) {
	uc := usecase.NewRoleUseCase(newMemRoleRepo(), newMemPermRepo(), nil)

	assert.ErrorIs(t, uc.Delete(context.Background(), "fantasma"), domain.ErrNotFound)
}
