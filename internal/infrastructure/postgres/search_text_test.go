package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
)

// Los casos de uso pliegan el término de búsqueda (minúsculas, sin acentos);
// la columna search_text debe almacenarse con el mismo plegado para que un
// nombre acentuado siga siendo encontrable por su forma exacta.

func TestRoleSearchText(t *testing.T) {
	role := &entity.Role{Name: "Administración", Description: "Gestión del sistema"}
	assert.Equal(t, "administracion gestion del sistema", roleSearchText(role))
}

func TestPermissionSearchText(t *testing.T) {
	p := &entity.Permission{
		Resource:    "almacenes",
		Action:      entity.ActionRead,
		Description: "Consulta de almacén",
	}
	assert.Equal(t, "almacenes read consulta de almacen", permissionSearchText(p))
}
