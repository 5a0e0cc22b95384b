package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	apphttp "github.com/cotelbo/cotel-admin-api/internal/interfaces/http"
	pkgjwt "github.com/cotelbo/cotel-admin-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testRoleID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "cotel-admin-test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios (solo los métodos que usa el resolver)
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	repository.UserRepository
	user *entity.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
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
	perms []entity.Permission
}

func (f *fakePermRepo) ListPairsByRole(_ context.Context, _ string) ([]entity.Permission, error) {
	return f.perms, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// buildGuardApp arma una app con la cadena completa de guards sobre
// GET /protegido, que exige (equipos, read). GET /exenta corre sin el guard
// de contraseña, como cambiar contraseña y cerrar sesión en el router real.
func buildGuardApp(user *entity.User, perms []entity.Permission) *fiber.App {
	role := &entity.Role{ID: testRoleID, Name: "Operador", Active: true}
	resolver := auth.NewResolver(
		&fakeUserRepo{user: user},
		&fakeRoleRepo{role: role},
		&fakePermRepo{perms: perms},
		nil,
	)

	app := fiber.New()
	app.Get("/protegido",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePasswordOK(),
		apphttp.RequireAccess(resolver, authz.Resource("equipos", entity.ActionRead)),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	app.Get("/exenta",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func activeUser(passwordState string, superuser bool) *entity.User {
	return &entity.User{
		ID:            testUserID,
		CotelCode:     123456,
		Names:         "María",
		Surnames:      "Quispe",
		RoleID:        testRoleID,
		IsActive:      true,
		IsSuperuser:   superuser,
		PasswordState: passwordState,
	}
}

func tokenFor(t *testing.T, u *entity.User, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, expMinutes, pkgjwt.Claims{
		UserID:        u.ID,
		CotelCode:     u.CotelCode,
		RoleID:        u.RoleID,
		Superuser:     u.IsSuperuser,
		PasswordState: u.PasswordState,
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readPerm() []entity.Permission {
	return []entity.Permission{
		{ID: "p1", Resource: "equipos", Action: entity.ActionRead, Active: true},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cadena de guards
// ──────────────────────────────────────────────────────────────────────────────

func TestGuards_SinToken_Retorna401(t *testing.T) {
	app := buildGuardApp(activeUser(entity.PasswordOK, false), readPerm())
	resp := doRequest(t, app, "/protegido", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestGuards_TokenConOtraFirma_Retorna401(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	tok, err := pkgjwt.Generate("otra-clave", testIssuer, 60, pkgjwt.Claims{UserID: user.ID})
	require.NoError(t, err)

	app := buildGuardApp(user, readPerm())
	resp := doRequest(t, app, "/protegido", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestGuards_TokenExpirado_Retorna401(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	app := buildGuardApp(user, readPerm())

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, -5))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El guard de contraseña corre antes que el de permisos: un usuario con
// cambio pendiente recibe PASSWORD_CHANGE_REQUIRED aunque tampoco tenga
// permisos para la ruta.
func TestGuards_CambioPendienteAntesQuePermisos(t *testing.T) {
	user := activeUser(entity.PasswordChangeRequired, false)
	app := buildGuardApp(user, nil) // sin permisos

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PASSWORD_CHANGE_REQUIRED")
	assert.NotContains(t, string(body), "FORBIDDEN")
}

func TestGuards_ResetPendienteBloquea(t *testing.T) {
	user := activeUser(entity.PasswordResetRequired, false)
	app := buildGuardApp(user, readPerm())

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PASSWORD_CHANGE_REQUIRED")
}

// Las rutas exentas (cambio de contraseña, logout) siguen accesibles con el
// cambio pendiente.
func TestGuards_RutaExentaConCambioPendiente(t *testing.T) {
	user := activeUser(entity.PasswordChangeRequired, false)
	app := buildGuardApp(user, nil)

	resp := doRequest(t, app, "/exenta", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuards_SinPermiso_Retorna403(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	app := buildGuardApp(user, nil)

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestGuards_ConPermiso_Retorna200(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	app := buildGuardApp(user, readPerm())

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El permiso debe ser el par exacto: (equipos, create) no abre una ruta que
// exige (equipos, read).
func TestGuards_ParDistintoNoAlcanza(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	perms := []entity.Permission{
		{ID: "p1", Resource: "equipos", Action: entity.ActionCreate, Active: true},
	}
	app := buildGuardApp(user, perms)

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Los permisos inactivos no cuentan para la sesión.
func TestGuards_PermisoInactivoNoCuenta(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	perms := []entity.Permission{
		{ID: "p1", Resource: "equipos", Action: entity.ActionRead, Active: false},
	}
	app := buildGuardApp(user, perms)

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// El superusuario pasa el guard de permisos sin resolver su snapshot.
func TestGuards_SuperusuarioSinPermisos_Retorna200(t *testing.T) {
	user := activeUser(entity.PasswordOK, true)
	app := buildGuardApp(user, nil)

	resp := doRequest(t, app, "/protegido", tokenFor(t, user, 60))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Un usuario desactivado después de emitido el token deja de resolver: el
// token vigente no mantiene viva la cuenta.
func TestGuards_UsuarioDesactivado_Retorna401(t *testing.T) {
	user := activeUser(entity.PasswordOK, false)
	token := tokenFor(t, user, 60)
	user.IsActive = false
	app := buildGuardApp(user, readPerm())

	resp := doRequest(t, app, "/protegido", token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
