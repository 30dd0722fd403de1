package postgres

import (
	"fmt"
	"strings"
)

// updateBuilder arma un UPDATE parcial con placeholders $n a partir de los campos del patch.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// set agrega "col = $n".
func (b *updateBuilder) set(col string, v any) {
	b.args = append(b.args, v)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

// setRaw agrega una expresión sin argumento, ej. "updated_at = now()".
func (b *updateBuilder) setRaw(expr string) {
	b.sets = append(b.sets, expr)
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build devuelve el SQL y los argumentos; el id va en el último placeholder.
func (b *updateBuilder) build(id int64) (string, []any) {
	args := append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", b.table, strings.Join(b.sets, ", "), len(args))
	return query, args
}
