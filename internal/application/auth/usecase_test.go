package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/domain"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := map[string]*entity.User{}
	for _, u := range users {
		cp := *u
		m[u.ID] = &cp
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByCotelCode(_ context.Context, code int) (*entity.User, error) {
	for _, u := range f.users {
		if u.CotelCode == code && !u.Deleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

type fakeRoleRepo struct {
	repository.RoleRepository
	role *entity.Role
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	if f.role != nil && f.role.ID == id {
		return f.role, nil
	}
	return nil, nil
}

type fakePermRepo struct {
	repository.PermissionRepository
	pairs []entity.Permission
}

func (f *fakePermRepo) ListPairsByRole(_ context.Context, _ string) ([]entity.Permission, error) {
	return f.pairs, nil
}

type fakeCache struct {
	snaps       map[string]*auth.Snapshot
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{snaps: map[string]*auth.Snapshot{}}
}

func (f *fakeCache) Get(_ context.Context, userID string) (*auth.Snapshot, error) {
	return f.snaps[userID], nil
}

func (f *fakeCache) Set(_ context.Context, userID string, s *auth.Snapshot) error {
	f.sets++
	f.snaps[userID] = s
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, userIDs ...string) error {
	f.invalidated = append(f.invalidated, userIDs...)
	for _, id := range userIDs {
		delete(f.snaps, id)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	return &entity.User{
		ID:            "user-1",
		CotelCode:     100234,
		Names:         "María",
		Surnames:      "Pérez",
		RoleID:        "role-1",
		PasswordHash:  hashOf(t, password),
		IsActive:      true,
		PasswordState: entity.PasswordOK,
	}
}

func newAuthUC(users *fakeUserRepo, cache *fakeCache) *auth.AuthUseCase {
	roles := &fakeRoleRepo{role: &entity.Role{ID: "role-1", Name: "Consulta", Active: true}}
	perms := &fakePermRepo{}
	var c auth.SnapshotCache
	if cache != nil {
		c = cache
	}
	resolver := auth.NewResolver(users, roles, perms, c)
	return auth.NewAuthUseCase(users, roles, resolver, c, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 30,
		Issuer:     "cotel-admin",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, "clave-segura"))
	uc := newAuthUC(users, nil)

	out, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "clave-segura"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, 100234, out.User.CotelCode)
	assert.False(t, out.RequiresPasswordChange)
}

func TestLogin_PrimerIngresoExigeCambio(t *testing.T) {
	u := activeUser(t, auth.InitialPassword(100234))
	u.PasswordState = entity.PasswordChangeRequired
	users := newFakeUserRepo(u)
	uc := newAuthUC(users, nil)

	out, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "100234"})
	require.NoError(t, err)
	assert.True(t, out.RequiresPasswordChange)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, "clave-segura"))
	uc := newAuthUC(users, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, users.users["user-1"].FailedLoginCount)

	_, err = uc.Login(context.Background(), dto.LoginRequest{CotelCode: 999999, Password: "da-igual"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "código inexistente recibe el mismo error")
}

func TestLogin_BloqueaAlLlegarAlLimite(t *testing.T) {
	u := activeUser(t, "clave-segura")
	u.FailedLoginCount = entity.MaxFailedLogins - 1
	users := newFakeUserRepo(u)
	uc := newAuthUC(users, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUserLocked)
	assert.True(t, users.users["user-1"].IsLocked)
}

func TestLogin_CuentaBloqueada(t *testing.T) {
	u := activeUser(t, "clave-segura")
	u.IsLocked = true
	uc := newAuthUC(newFakeUserRepo(u), nil)

	// incluso con la contraseña correcta
	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserLocked)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	u := activeUser(t, "clave-segura")
	u.IsActive = false
	uc := newAuthUC(newFakeUserRepo(u), nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestLogin_UsuarioEliminado(t *testing.T) {
	u := activeUser(t, "clave-segura")
	u.Deleted = true
	uc := newAuthUC(newFakeUserRepo(u), nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_ExitoReiniciaContador(t *testing.T) {
	u := activeUser(t, "clave-segura")
	u.FailedLoginCount = 3
	users := newFakeUserRepo(u)
	uc := newAuthUC(users, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{CotelCode: 100234, Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, 0, users.users["user-1"].FailedLoginCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_Politica(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, "clave-vieja"))
	uc := newAuthUC(users, nil)
	ctx := context.Background()

	_, err := uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		OldPassword: "clave-vieja", NewPassword: "clave-nueva-1", ConfirmPassword: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	_, err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		OldPassword: "clave-vieja", NewPassword: "corta", ConfirmPassword: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordTooWeak)

	_, err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		OldPassword: "clave-vieja", NewPassword: "clave-vieja", ConfirmPassword: "clave-vieja",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordUnchanged)

	_, err = uc.ChangePassword(ctx, "user-1", dto.ChangePasswordRequest{
		OldPassword: "no-es-la-vieja", NewPassword: "clave-nueva-1", ConfirmPassword: "clave-nueva-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword_Exitoso(t *testing.T) {
	u := activeUser(t, "100234")
	u.PasswordState = entity.PasswordChangeRequired
	users := newFakeUserRepo(u)
	cache := newFakeCache()
	uc := newAuthUC(users, cache)

	out, err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		OldPassword: "100234", NewPassword: "clave-nueva-1", ConfirmPassword: "clave-nueva-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken, "se emite un token con el estado nuevo")
	stored := users.users["user-1"]
	assert.Equal(t, entity.PasswordOK, stored.PasswordState)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-nueva-1")))
	assert.Contains(t, cache.invalidated, "user-1", "el snapshot cacheado se descarta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver
// ──────────────────────────────────────────────────────────────────────────────

func newResolver(users *fakeUserRepo, perms *fakePermRepo, cache *fakeCache) *auth.Resolver {
	roles := &fakeRoleRepo{role: &entity.Role{ID: "role-1", Name: "Consulta", Active: true}}
	var c auth.SnapshotCache
	if cache != nil {
		c = cache
	}
	return auth.NewResolver(users, roles, perms, c)
}

func TestResolver_CacheHitNoTocaLaBase(t *testing.T) {
	cache := newFakeCache()
	cache.snaps["user-1"] = &auth.Snapshot{
		Role:  "Consulta",
		Pairs: []authz.Pair{{Resource: "equipos", Action: entity.ActionRead}},
	}
	// repos vacíos: un acceso a la base devolvería no autorizado
	r := newResolver(newFakeUserRepo(), &fakePermRepo{}, cache)

	p, err := r.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, p.Permissions.Has(authz.Pair{Resource: "equipos", Action: entity.ActionRead}))
	assert.Zero(t, cache.sets, "un hit no reescribe el cache")
}

func TestResolver_MissCargaYCachea(t *testing.T) {
	cache := newFakeCache()
	users := newFakeUserRepo(activeUser(t, "x"))
	perms := &fakePermRepo{pairs: []entity.Permission{
		{Resource: "equipos", Action: entity.ActionRead, Active: true},
		{Resource: "equipos", Action: entity.ActionDelete, Active: false},
	}}
	r := newResolver(users, perms, cache)

	p, err := r.Resolve(context.Background(), "user-1")
	require.NoError(t, err)

	assert.True(t, p.Permissions.Has(authz.Pair{Resource: "equipos", Action: entity.ActionRead}))
	assert.False(t, p.Permissions.Has(authz.Pair{Resource: "equipos", Action: entity.ActionDelete}),
		"los permisos inactivos no entran al snapshot")
	assert.Equal(t, 1, cache.sets)
	assert.NotNil(t, cache.snaps["user-1"])
}

func TestResolver_UsuarioDeshabilitado(t *testing.T) {
	u := activeUser(t, "x")
	u.IsActive = false
	r := newResolver(newFakeUserRepo(u), &fakePermRepo{}, nil)

	_, err := r.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolver_UsuarioInexistente(t *testing.T) {
	r := newResolver(newFakeUserRepo(), &fakePermRepo{}, nil)

	_, err := r.Resolve(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolver_SinRolResuelveVacio(t *testing.T) {
	u := activeUser(t, "x")
	u.RoleID = ""
	r := newResolver(newFakeUserRepo(u), &fakePermRepo{}, nil)

	p, err := r.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, p.Role)
	assert.False(t, p.Permissions.Has(authz.Pair{Resource: "equipos", Action: entity.ActionRead}))
}
