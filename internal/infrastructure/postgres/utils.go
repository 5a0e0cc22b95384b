package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// likeEscaper escapa los metacaracteres de LIKE. Postgres usa backslash como
// carácter de escape por defecto.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern arma el patrón para búsqueda libre sobre la columna normalizada.
// El término se escapa para que "%" o "_" en la entrada no amplíen la búsqueda.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
