package sqlq

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

// Queryer lo cumplen *sql.DB y *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ListStatement describe un listado paginado sobre una tabla.
// Columns y From son SQL fijo del repositorio; los valores de filtro
// siempre viajan como argumentos.
type ListStatement struct {
	Columns    string
	From       string
	Criteria   sharedDomain.Criteria
	Sort       sharedQuery.Sort
	Pagination sharedQuery.OffsetPagination
}

// Where traduce criterios a una cláusula WHERE (vacía si no hay condiciones).
func Where(d Dialect, args *Args, criteria sharedDomain.Criteria) string {
	if criteria == nil {
		return ""
	}
	conds := criteria.ToConditions()
	if len(conds) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(conds))
	for _, c := range conds {
		clauses = append(clauses, condition(d, args, c))
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func condition(d Dialect, args *Args, c sharedDomain.Criterion) string {
	if len(c.Any) > 0 {
		parts := make([]string, 0, len(c.Any))
		for _, sub := range c.Any {
			parts = append(parts, condition(d, args, sub))
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
	switch c.Op {
	case sharedDomain.OpIsNull, sharedDomain.OpNotNull:
		return fmt.Sprintf("%s %s", c.Field, c.Op)
	case sharedDomain.OpILike:
		return fmt.Sprintf("%s %s %s", c.Field, d.ilike, args.Add(c.Value))
	default:
		return fmt.Sprintf("%s %s %s", c.Field, c.Op, args.Add(c.Value))
	}
}

// Build genera la consulta paginada y la consulta de conteo.
// El conteo no lleva LIMIT para que el total sea correcto aunque la página esté vacía.
func Build(d Dialect, stmt ListStatement) (listSQL string, listArgs []interface{}, countSQL string, countArgs []interface{}) {
	countArgsB := NewArgs(d)
	countWhere := Where(d, countArgsB, stmt.Criteria)
	countSQL = "SELECT COUNT(*) FROM " + stmt.From + countWhere

	args := NewArgs(d)
	where := Where(d, args, stmt.Criteria)
	listSQL = "SELECT " + stmt.Columns + " FROM " + stmt.From + where
	if stmt.Sort.Field != "" {
		listSQL += fmt.Sprintf(" ORDER BY %s %s", stmt.Sort.Field, sharedUtils.Ternary(stmt.Sort.Desc, "DESC", "ASC"))
	}
	if stmt.Pagination.Limit > 0 {
		listSQL += fmt.Sprintf(" LIMIT %s OFFSET %s", args.Add(stmt.Pagination.Limit), args.Add(stmt.Pagination.Offset))
	}
	return listSQL, args.Values(), countSQL, countArgsB.Values()
}

// QueryPage ejecuta el conteo y el listado y escanea cada fila con scan.
func QueryPage[T any](ctx context.Context, db Queryer, d Dialect, stmt ListStatement, scan func(*sql.Rows) (T, error)) (sharedQuery.Page[T], error) {
	listSQL, listArgs, countSQL, countArgs := Build(d, stmt)

	var page sharedQuery.Page[T]
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&page.TotalRecords); err != nil {
		return page, fmt.Errorf("count query: %w", err)
	}

	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return page, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	page.Items = make([]T, 0, stmt.Pagination.Limit)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return page, fmt.Errorf("scan row: %w", err)
		}
		page.Items = append(page.Items, item)
	}
	return page, rows.Err()
}
