package paging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

func TestFromQuery_Saneamiento(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
	}{
		{"valores por defecto", 0, 0, 1, paging.DefaultPageSize},
		{"página negativa", -3, 10, 1, 10},
		{"tamaño negativo", 2, -1, 2, paging.DefaultPageSize},
		{"tamaño sobre el tope", 1, 500, 1, paging.MaxPageSize},
		{"tamaño en el tope", 1, 100, 1, 100},
		{"valores normales", 3, 25, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paging.FromQuery(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, p.Number)
			assert.Equal(t, tc.wantSize, p.Size)
		})
	}
}

func TestLimitOffset(t *testing.T) {
	limit, offset := paging.Page{Number: 1, Size: 20}.LimitOffset()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = paging.Page{Number: 4, Size: 25}.LimitOffset()
	assert.Equal(t, 25, limit)
	assert.Equal(t, 75, offset)
}

func TestNewEnvelope_PaginaIntermedia(t *testing.T) {
	p := paging.Page{Number: 2, Size: 10}
	env := paging.NewEnvelope("/api/usuarios?q=perez&page=2&page_size=10", p, 35, []string{})

	assert.Equal(t, 35, env.Count)
	require.NotNil(t, env.Next)
	require.NotNil(t, env.Previous)
	assert.Contains(t, *env.Next, "page=3")
	assert.Contains(t, *env.Next, "page_size=10")
	assert.Contains(t, *env.Next, "q=perez", "el resto de la query se conserva")
	assert.Contains(t, *env.Previous, "page=1")
}

func TestNewEnvelope_PrimeraPagina(t *testing.T) {
	env := paging.NewEnvelope("/api/usuarios", paging.Page{Number: 1, Size: 20}, 45, nil)

	assert.Nil(t, env.Previous, "la primera página no tiene anterior")
	require.NotNil(t, env.Next)
	assert.Contains(t, *env.Next, "page=2")
}

func TestNewEnvelope_UltimaPagina(t *testing.T) {
	// 45 registros con páginas de 20: la página 3 es la última.
	env := paging.NewEnvelope("/api/usuarios", paging.Page{Number: 3, Size: 20}, 45, nil)

	assert.Nil(t, env.Next, "la última página no tiene siguiente")
	require.NotNil(t, env.Previous)
	assert.Contains(t, *env.Previous, "page=2")
}

func TestNewEnvelope_PaginaUnica(t *testing.T) {
	env := paging.NewEnvelope("/api/almacenes", paging.Page{Number: 1, Size: 20}, 5, nil)

	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
}

func TestNewEnvelope_SinResultados(t *testing.T) {
	env := paging.NewEnvelope("/api/almacenes", paging.Page{Number: 1, Size: 20}, 0, nil)

	assert.Equal(t, 0, env.Count)
	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
}

func TestNewEnvelope_ConteoExactoDePagina(t *testing.T) {
	// 40 registros con páginas de 20: la página 2 es exactamente la última.
	env := paging.NewEnvelope("/api/lotes", paging.Page{Number: 2, Size: 20}, 40, nil)

	assert.Nil(t, env.Next)
	require.NotNil(t, env.Previous)
}
