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

func TestPermissionCreate_Exitoso(t *testing.T) {
	perms := newMemPermRepo()
	uc := usecase.NewPermissionUseCase(perms)

	out, err := uc.Create(context.Background(), dto.CreatePermissionRequest{
		Resource:    "equipos",
		Action:      "read",
		Description: "Consultar equipos",
	})
	require.NoError(t, err)

	assert.Equal(t, "equipos", out.Resource)
	assert.Equal(t, "read", out.Action)
	assert.True(t, out.Active, "activo por defecto")
}

func TestPermissionCreate_AccionInvalida(t *testing.T) {
	uc := usecase.NewPermissionUseCase(newMemPermRepo())

	_, err := uc.Create(context.Background(), dto.CreatePermissionRequest{Resource: "equipos", Action: "execute"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreatePermissionRequest{Resource: "", Action: "read"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPermissionCreate_ParDuplicado(t *testing.T) {
	perms := newMemPermRepo(&entity.Permission{ID: "perm-1", Resource: "equipos", Action: entity.ActionRead})
	uc := usecase.NewPermissionUseCase(perms)

	_, err := uc.Create(context.Background(), dto.CreatePermissionRequest{Resource: "equipos", Action: "read"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPermissionUpdate_IdentidadInmutable(t *testing.T) {
	perms := newMemPermRepo(&entity.Permission{
		ID: "perm-1", Resource: "equipos", Action: entity.ActionRead, Active: true, InUse: true,
	})
	uc := usecase.NewPermissionUseCase(perms)

	// un permiso en uso sigue siendo editable en descripción y activo
	out, err := uc.Update(context.Background(), "perm-1", dto.UpdatePermissionRequest{
		Description: strPtr("Lectura de inventario"),
		Active:      boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lectura de inventario", out.Description)
	assert.False(t, out.Active)
	assert.Equal(t, "equipos", out.Resource)
	assert.Equal(t, "read", out.Action)
}

func TestPermissionDelete_EnUso(t *testing.T) {
	perms := newMemPermRepo(&entity.Permission{
		ID: "perm-1", Resource: "equipos", Action: entity.ActionRead, Active: true, InUse: true,
	})
	uc := usecase.NewPermissionUseCase(perms)

	assert.ErrorIs(t, uc.Delete(context.Background(), "perm-1"), domain.ErrPermissionInUse)
	assert.Empty(t, perms.deleted)
}

func TestPermissionDelete_SinAsignaciones(t *testing.T) {
	perms := newMemPermRepo(&entity.Permission{ID: "perm-1", Resource: "equipos", Action: entity.ActionRead})
	uc := usecase.NewPermissionUseCase(perms)

	require.NoError(t, uc.Delete(context.Background(), "perm-1"))
	assert.Contains(t, perms.deleted, "perm-1")
}

func TestPermissionList_AccionInvalidaEnFiltro(t *testing.T) {
	uc := usecase.NewPermissionUseCase(newMemPermRepo())

	_, _, err := uc.List(context.Background(), "", "", "execute", nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPermissionList_PliegaElTermino(t *testing.T) {
	perms := newMemPermRepo()
	uc := usecase.NewPermissionUseCase(perms)

	_, _, err := uc.List(context.Background(), "Almacén", "", "", nil, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "almacen", perms.lastFilter.Search)
}
