package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

func consultaRole() *entity.Role {
	return &entity.Role{ID: "role-1", Name: "Consulta", Active: true}
}

func TestUserCreate_ContrasenaInicialEsElCodigo(t *testing.T) {
	users := newMemUserRepo()
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(consultaRole()), nil)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		CotelCode: 100234,
		Names:     "María",
		Surnames:  "Pérez",
		RoleID:    "role-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PasswordChangeRequired, out.PasswordState)
	assert.True(t, out.IsActive)
	require.NotNil(t, out.RoleInfo)
	assert.Equal(t, "Consulta", out.RoleInfo.Name)

	stored := users.users[out.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("100234")))
}

func TestUserCreate_CodigoDuplicado(t *testing.T) {
	users := newMemUserRepo(&entity.User{ID: "user-1", CotelCode: 100234, Names: "Ana"})
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(), nil)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{CotelCode: 100234, Names: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserCreate_RolInexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo(), newMemRoleRepo(), nil)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		CotelCode: 100234, Names: "Ana", RoleID: "fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_SinRolEsValido(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo(), newMemRoleRepo(), nil)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{CotelCode: 100234, Names: "Ana"})
	require.NoError(t, err)
	assert.Empty(t, out.RoleID)
	assert.Nil(t, out.RoleInfo)
}

func TestUserUpdate_CambioDeRolInvalidaSnapshot(t *testing.T) {
	users := newMemUserRepo(&entity.User{ID: "user-1", CotelCode: 100234, Names: "Ana", IsActive: true})
	roles := newMemRoleRepo(consultaRole())
	cache := &memCache{}
	uc := usecase.NewUserUseCase(users, roles, cache)

	_, err := uc.Update(context.Background(), "user-1", dto.UpdateUserRequest{RoleID: strPtr("role-1")})
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, "user-1")
}

func TestUserUpdate_SoloNombresNoInvalida(t *testing.T) {
	users := newMemUserRepo(&entity.User{ID: "user-1", CotelCode: 100234, Names: "Ana", IsActive: true})
	cache := &memCache{}
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(), cache)

	_, err := uc.Update(context.Background(), "user-1", dto.UpdateUserRequest{Names: strPtr("Ana María")})
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated, "un cambio sin efecto en permisos no toca el cache")
}

func TestUserUnlock(t *testing.T) {
	users := newMemUserRepo(&entity.User{
		ID: "user-1", CotelCode: 100234, Names: "Ana",
		IsActive: true, IsLocked: true, FailedLoginCount: entity.MaxFailedLogins,
	})
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(), nil)

	out, err := uc.Unlock(context.Background(), "user-1")
	require.NoError(t, err)

	assert.False(t, out.IsLocked)
	assert.Equal(t, 0, out.FailedLoginCount)
}

func TestUserResetPassword(t *testing.T) {
	users := newMemUserRepo(&entity.User{
		ID: "user-1", CotelCode: 100234, Names: "Ana",
		IsActive: true, IsLocked: true, FailedLoginCount: 4,
		PasswordHash: "hash-viejo", PasswordState: entity.PasswordOK,
	})
	cache := &memCache{}
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(), cache)

	out, err := uc.ResetPassword(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.PasswordResetRequired, out.PasswordState)
	assert.False(t, out.IsLocked)
	assert.Equal(t, 0, out.FailedLoginCount)
	assert.Contains(t, cache.invalidated, "user-1")

	stored := users.users["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("100234")),
		"la contraseña vuelve al código COTEL")
}

func TestUserDelete_BorradoLogicoYRestore(t *testing.T) {
	users := newMemUserRepo(&entity.User{ID: "user-1", CotelCode: 100234, Names: "Ana", IsActive: true})
	cache := &memCache{}
	uc := usecase.NewUserUseCase(users, newMemRoleRepo(), cache)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "user-1"))
	assert.True(t, users.users["user-1"].Deleted)
	assert.Contains(t, cache.invalidated, "user-1")

	out, err := uc.Restore(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, out.Deleted)
	assert.Contains(t, users.restored, "user-1")
}

func TestUserGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo(), newMemRoleRepo(), nil)

	_, err := uc.GetByID(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
