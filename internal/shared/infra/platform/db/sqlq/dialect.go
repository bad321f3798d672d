package sqlq

import (
	"fmt"
	"strings"
)

// Dialect recoge las diferencias entre SQLite y Postgres que afectan a los listados.
type Dialect struct {
	Name     string
	numbered bool   // $1, $2... en lugar de ?
	ilike    string // operador para búsquedas insensibles a mayúsculas
}

var (
	SQLite   = Dialect{Name: "sqlite", ilike: "LIKE"}
	Postgres = Dialect{Name: "postgres", numbered: true, ilike: "ILIKE"}
)

// Placeholder devuelve el marcador del argumento n (1-indexed).
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Args acumula argumentos y devuelve el placeholder adecuado para cada uno.
type Args struct {
	d      Dialect
	values []interface{}
}

func NewArgs(d Dialect) *Args {
	return &Args{d: d}
}

// Add registra v y devuelve su placeholder.
func (a *Args) Add(v interface{}) string {
	a.values = append(a.values, v)
	return a.d.Placeholder(len(a.values))
}

func (a *Args) Values() []interface{} {
	return a.values
}

// Rebind reescribe los ? de una consulta al formato del dialecto.
// Las consultas de los repositorios se escriben siempre con ?.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MonthExpr agrupa una columna de fecha por mes en formato YYYY-MM.
func (d Dialect) MonthExpr(column string) string {
	if d.numbered {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	// SQLite guarda las fechas como texto "YYYY-MM-DD HH:MM:SS..."
	return fmt.Sprintf("substr(%s, 1, 7)", column)
}
