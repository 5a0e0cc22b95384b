package authz

import "github.com/cotelbo/cotel-admin-api/internal/domain/entity"

// CriterionKind variante cerrada de criterios de acceso. El orden de las
// constantes define la precedencia de evaluación.
type CriterionKind int

const (
	// KindResource chequeo singular (recurso, acción).
	KindResource CriterionKind = iota
	// KindRole chequeo de rol singular.
	KindRole
	// KindRoleList lista de roles, basta coincidir con uno.
	KindRoleList
	// KindPermissionList lista de pares; RequireAll decide todos-o-alguno.
	KindPermissionList
)

// Criterion criterio de acceso etiquetado. Construir solo con los
// constructores; los campos no usados por la variante quedan en cero.
type Criterion struct {
	Kind       CriterionKind
	Resource   string
	Action     entity.Action
	Role       string
	Roles      []string
	Pairs      []Pair
	RequireAll bool
}

// Resource criterio por par (recurso, acción).
func Resource(resource string, action entity.Action) Criterion {
	return Criterion{Kind: KindResource, Resource: resource, Action: action}
}

// Role criterio por rol singular.
func Role(name string) Criterion {
	return Criterion{Kind: KindRole, Role: name}
}

// AnyRole criterio por lista de roles (coincidencia con cualquiera).
func AnyRole(names ...string) Criterion {
	return Criterion{Kind: KindRoleList, Roles: names}
}

// Permissions criterio por lista de pares; requireAll true exige todos.
func Permissions(requireAll bool, pairs ...Pair) Criterion {
	return Criterion{Kind: KindPermissionList, Pairs: pairs, RequireAll: requireAll}
}

// satisfied evalúa el criterio de forma aislada (nunca se combinan con AND).
func (c Criterion) satisfied(p Principal) bool {
	switch c.Kind {
	case KindResource:
		return c.Resource != "" && c.Action.Valid() && p.HasPermission(c.Resource, c.Action)
	case KindRole:
		return p.HasRole(c.Role)
	case KindRoleList:
		for _, name := range c.Roles {
			if p.HasRole(name) {
				return true
			}
		}
		return false
	case KindPermissionList:
		if c.RequireAll {
			return p.HasAll(c.Pairs)
		}
		return p.HasAny(c.Pairs)
	}
	return false
}

// Evaluate decide el acceso del principal dado un conjunto de criterios.
//
// Reglas, en este orden:
//  1. Superusuario: siempre permitido, sin mirar los criterios.
//  2. Sin criterios: permitido (ruta/fragmento sin restricción declarada).
//  3. Los criterios se evalúan por precedencia de variante (recurso/acción,
//     rol singular, lista de roles, lista de permisos) y el primero
//     satisfecho concede el acceso. Cada criterio se evalúa de forma
//     independiente; nunca se combinan entre sí.
func Evaluate(p Principal, criteria []Criterion) bool {
	if p.Superuser {
		return true
	}
	if len(criteria) == 0 {
		return true
	}
	for kind := KindResource; kind <= KindPermissionList; kind++ {
		for _, c := range criteria {
			if c.Kind != kind {
				continue
			}
			if c.satisfied(p) {
				return true
			}
		}
	}
	return false
}
