// Package authz implementa la evaluación de permisos RBAC del panel
// administrativo: pares exactos (recurso, acción), bypass de superusuario y
// criterios compuestos con precedencia fija. Es lógica pura sin I/O para que
// el middleware HTTP y el endpoint /auth/can compartan exactamente las
// mismas reglas.
package authz

import "github.com/cotelbo/cotel-admin-api/internal/domain/entity"

// Pair par (recurso, acción) sujeto a control de acceso.
type Pair struct {
	Resource string
	Action   entity.Action
}

// Set conjunto de pares de permisos efectivos de una sesión.
type Set map[Pair]struct{}

// NewSet construye un Set a partir de pares sueltos. Los pares con acción
// fuera del conjunto cerrado se descartan.
func NewSet(pairs ...Pair) Set {
	s := make(Set, len(pairs))
	for _, p := range pairs {
		if p.Resource == "" || !p.Action.Valid() {
			continue
		}
		s[p] = struct{}{}
	}
	return s
}

// Has reporta pertenencia exacta del par.
func (s Set) Has(p Pair) bool {
	_, ok := s[p]
	return ok
}

// Pairs devuelve los pares del conjunto (orden no determinista).
func (s Set) Pairs() []Pair {
	out := make([]Pair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// Principal identidad efectiva de una sesión ya resuelta: bandera de
// superusuario, nombre del rol asignado y conjunto plano de permisos.
type Principal struct {
	Superuser   bool
	Role        string
	Permissions Set
}

// HasPermission reporta si el principal puede ejecutar action sobre resource.
// El bypass de superusuario se evalúa primero y corta toda otra lógica; sin
// superusuario, la respuesta es pertenencia exacta del par — "update" nunca
// implica "read".
func (p Principal) HasPermission(resource string, action entity.Action) bool {
	if p.Superuser {
		return true
	}
	return p.Permissions.Has(Pair{Resource: resource, Action: action})
}

// HasRole reporta si el principal tiene exactamente el rol indicado.
// El superusuario también pasa los chequeos por rol.
func (p Principal) HasRole(name string) bool {
	if p.Superuser {
		return true
	}
	return name != "" && p.Role == name
}

// HasAny true si al menos un par de la lista está presente.
// Con lista vacía devuelve false (nada que conceder).
func (p Principal) HasAny(pairs []Pair) bool {
	if p.Superuser {
		return true
	}
	for _, pr := range pairs {
		if p.Permissions.Has(pr) {
			return true
		}
	}
	return false
}

// HasAll true si todos los pares de la lista están presentes.
// Con lista vacía devuelve false: un chequeo sin criterios no concede acceso.
func (p Principal) HasAll(pairs []Pair) bool {
	if p.Superuser {
		return true
	}
	if len(pairs) == 0 {
		return false
	}
	for _, pr := range pairs {
		if !p.Permissions.Has(pr) {
			return false
		}
	}
	return true
}
