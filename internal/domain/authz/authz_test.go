package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotelbo/cotel-admin-api/internal/domain/authz"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

func operadorPrincipal() authz.Principal {
	return authz.Principal{
		Role: "Operador",
		Permissions: authz.NewSet(
			authz.Pair{Resource: "equipos", Action: entity.ActionRead},
			authz.Pair{Resource: "equipos", Action: entity.ActionCreate},
			authz.Pair{Resource: "lotes", Action: entity.ActionRead},
		),
	}
}

func TestHasPermission_ParExacto(t *testing.T) {
	p := operadorPrincipal()

	assert.True(t, p.HasPermission("equipos", entity.ActionRead))
	assert.False(t, p.HasPermission("usuarios", entity.ActionRead), "otro recurso no cuenta")
}

// No hay jerarquía entre acciones: tener update no implica read ni al revés.
func TestHasPermission_SinJerarquiaDeAcciones(t *testing.T) {
	p := authz.Principal{
		Permissions: authz.NewSet(authz.Pair{Resource: "roles", Action: entity.ActionUpdate}),
	}

	assert.True(t, p.HasPermission("roles", entity.ActionUpdate))
	assert.False(t, p.HasPermission("roles", entity.ActionRead))
	assert.False(t, p.HasPermission("roles", entity.ActionDelete))
}

func TestHasPermission_SuperusuarioPasaSiempre(t *testing.T) {
	p := authz.Principal{Superuser: true}

	assert.True(t, p.HasPermission("cualquiera", entity.ActionDelete),
		"el superusuario pasa sin mirar el conjunto de permisos")
}

func TestHasAnyHasAll(t *testing.T) {
	p := operadorPrincipal()
	read := authz.Pair{Resource: "equipos", Action: entity.ActionRead}
	del := authz.Pair{Resource: "equipos", Action: entity.ActionDelete}

	assert.True(t, p.HasAny([]authz.Pair{del, read}))
	assert.False(t, p.HasAny([]authz.Pair{del}))
	assert.True(t, p.HasAll([]authz.Pair{read, {Resource: "lotes", Action: entity.ActionRead}}))
	assert.False(t, p.HasAll([]authz.Pair{read, del}))
}

// Lista vacía: HasAny y HasAll niegan; un criterio sin pares nunca concede.
func TestHasAnyHasAll_ListaVacia(t *testing.T) {
	p := operadorPrincipal()

	assert.False(t, p.HasAny(nil))
	assert.False(t, p.HasAll(nil))
}

func TestEvaluate_SinCriteriosPermite(t *testing.T) {
	assert.True(t, authz.Evaluate(authz.Principal{}, nil),
		"ruta sin restricción declarada es accesible para cualquier sesión")
}

func TestEvaluate_SuperusuarioIgnoraCriterios(t *testing.T) {
	criteria := []authz.Criterion{authz.Resource("usuarios", entity.ActionDelete)}

	assert.True(t, authz.Evaluate(authz.Principal{Superuser: true}, criteria))
	assert.False(t, authz.Evaluate(authz.Principal{}, criteria))
}

// Los criterios nunca se combinan con AND: basta satisfacer uno.
func TestEvaluate_PrimerCriterioSatisfechoGana(t *testing.T) {
	p := operadorPrincipal()
	criteria := []authz.Criterion{
		authz.Resource("usuarios", entity.ActionRead), // no lo tiene
		authz.Role("Operador"),                        // sí
	}

	assert.True(t, authz.Evaluate(p, criteria))
}

func TestEvaluate_PorRol(t *testing.T) {
	p := operadorPrincipal()

	assert.True(t, authz.Evaluate(p, []authz.Criterion{authz.Role("Operador")}))
	assert.False(t, authz.Evaluate(p, []authz.Criterion{authz.Role("Administrador")}))
	assert.True(t, authz.Evaluate(p, []authz.Criterion{authz.AnyRole("Administrador", "Operador")}))
	assert.False(t, authz.Evaluate(p, []authz.Criterion{authz.AnyRole("Administrador", "Consulta")}))
}

func TestEvaluate_ListaDePermisos(t *testing.T) {
	p := operadorPrincipal()
	read := authz.Pair{Resource: "equipos", Action: entity.ActionRead}
	del := authz.Pair{Resource: "equipos", Action: entity.ActionDelete}

	assert.True(t, authz.Evaluate(p, []authz.Criterion{authz.Permissions(false, del, read)}))
	assert.False(t, authz.Evaluate(p, []authz.Criterion{authz.Permissions(true, del, read)}),
		"requiere_todos exige el conjunto completo")
}

// La precedencia por variante es fija: un criterio de recurso se evalúa antes
// que uno de rol aunque esté declarado después.
func TestEvaluate_PrecedenciaDeVariantes(t *testing.T) {
	p := operadorPrincipal()
	criteria := []authz.Criterion{
		authz.Role("Otro"),
		authz.Resource("equipos", entity.ActionRead),
	}

	assert.True(t, authz.Evaluate(p, criteria))
}

func TestActionValid(t *testing.T) {
	assert.True(t, entity.ActionCreate.Valid())
	assert.True(t, entity.Action("delete").Valid())
	assert.False(t, entity.Action("export").Valid())
	assert.False(t, entity.Action("").Valid())
}
