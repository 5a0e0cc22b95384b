package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger carga ./docs/swagger.json al arrancar; el archivo
// tiene que existir en el repositorio y ser un spec válido.
func TestSwaggerSpecEmpaquetado(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json debe estar versionado")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	require.NotEmpty(t, spec.Paths)

	for _, route := range []string{
		"/auth/login",
		"/usuarios",
		"/importaciones/validar",
		"/reportes/inventario/{id}",
	} {
		assert.Contains(t, spec.Paths, route)
	}
}
