package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotelbo/cotel-admin-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pérez", "perez"},
		{"GONZÁLEZ", "gonzalez"},
		{"María José Ñuño", "maria jose nuno"},
		{"sin acentos", "sin acentos"},
		{"", ""},
		{"Über", "uber"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textnorm.Fold(tc.in), "Fold(%q)", tc.in)
	}
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "100234 maria perez", textnorm.SearchKey("100234", "María", "Pérez"))
	assert.Equal(t, "juan", textnorm.SearchKey("  Juan  ", "", "   "))
	assert.Equal(t, "", textnorm.SearchKey("", ""))
}
