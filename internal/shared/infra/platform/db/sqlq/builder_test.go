package sqlq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

func TestBuild_SQLite(t *testing.T) {
	stmt := ListStatement{
		Columns: "id, names",
		From:    "clients",
		Criteria: sharedDomain.And(
			sharedDomain.StatusCriteria{},
			sharedDomain.SearchCriteria{Fields: []string{"names", "last_names"}, Term: "ana"},
			sharedDomain.EqualCriteria{Field: "gender", Value: "F"},
		),
		Sort:       sharedQuery.Sort{Field: "names", Desc: true},
		Pagination: sharedQuery.OffsetPagination{Limit: 10, Offset: 20},
	}

	listSQL, listArgs, countSQL, countArgs := Build(SQLite, stmt)

	assert.Equal(t,
		"SELECT id, names FROM clients WHERE deleted_at IS NULL AND (names LIKE ? OR last_names LIKE ?) AND gender = ? ORDER BY names DESC LIMIT ? OFFSET ?",
		listSQL)
	assert.Equal(t, []interface{}{"%ana%", "%ana%", "F", 10, 20}, listArgs)
	assert.Equal(t,
		"SELECT COUNT(*) FROM clients WHERE deleted_at IS NULL AND (names LIKE ? OR last_names LIKE ?) AND gender = ?",
		countSQL)
	assert.Equal(t, []interface{}{"%ana%", "%ana%", "F"}, countArgs)
}

func TestBuild_PostgresNumbersPlaceholders(t *testing.T) {
	stmt := ListStatement{
		Columns:    "id",
		From:       "incomes",
		Criteria:   sharedDomain.And(sharedDomain.RangeCriteria{Field: "amount", Min: 1.0, Max: 9.0}, sharedDomain.SearchCriteria{Fields: []string{"description"}, Term: "plan"}),
		Sort:       sharedQuery.Sort{Field: "date"},
		Pagination: sharedQuery.OffsetPagination{Limit: 5},
	}

	listSQL, listArgs, _, _ := Build(Postgres, stmt)

	assert.Equal(t,
		"SELECT id FROM incomes WHERE amount >= $1 AND amount <= $2 AND description ILIKE $3 ORDER BY date ASC LIMIT $4 OFFSET $5",
		listSQL)
	assert.Len(t, listArgs, 5)
}

func TestBuild_NoCriteria(t *testing.T) {
	listSQL, _, countSQL, countArgs := Build(SQLite, ListStatement{Columns: "*", From: "assets"})
	assert.Equal(t, "SELECT * FROM assets", listSQL)
	assert.Equal(t, "SELECT COUNT(*) FROM assets", countSQL)
	assert.Empty(t, countArgs)
}

func TestMonthExpr(t *testing.T) {
	assert.Equal(t, "substr(date, 1, 7)", SQLite.MonthExpr("date"))
	assert.Equal(t, "to_char(date, 'YYYY-MM')", Postgres.MonthExpr("date"))
}
