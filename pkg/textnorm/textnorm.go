// Package textnorm normaliza texto para búsqueda libre insensible a
// mayúsculas y acentos (nombres y apellidos en español: "Pérez" ≈ "perez").
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // quitar marcas diacríticas
	norm.NFC,
)

// Fold devuelve el texto en minúsculas y sin diacríticos.
// Si la transformación falla (entrada no UTF-8 válida), devuelve la entrada en minúsculas.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// SearchKey concatena y normaliza campos para la columna de búsqueda.
func SearchKey(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, Fold(f))
		}
	}
	return strings.Join(parts, " ")
}
