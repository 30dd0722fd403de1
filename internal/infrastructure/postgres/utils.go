package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón ILIKE de "contiene"; % y _ del usuario se buscan literales (usar con ESCAPE '\').
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// nullIfEmpty guarda NULL en vez de "" (barcode UNIQUE admite varios NULL).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
