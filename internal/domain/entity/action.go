package entity

// Action es el conjunto cerrado de operaciones del modelo de permisos.
// No existe jerarquía implícita entre acciones: "update" no implica "read".
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reporta si la acción pertenece al conjunto cerrado.
// Toda entrada externa se valida aquí antes de llegar al evaluador o a storage.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Actions lista las acciones válidas en orden estable (catálogos y seeds).
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}
