package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

func newContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/client/list?"+rawQuery, nil)
	return c
}

var clientSort = map[string]string{"names": "names", "createdAt": "created_at"}

func TestParseListQuery_Defaults(t *testing.T) {
	q := ParseListQuery(newContext(""), clientSort, sharedQuery.Sort{Field: "id"})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, 1, q.SearchType)
	assert.Equal(t, "id", q.Sort.Field)
}

func TestParseListQuery_Lenient(t *testing.T) {
	q := ParseListQuery(newContext("size=7&page=0&orderBy=password"), clientSort, sharedQuery.Sort{Field: "id"})
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "id", q.Sort.Field, "un orderBy fuera de la lista blanca no llega al SQL")
}

func TestParseListQuery_Full(t *testing.T) {
	q := ParseListQuery(newContext("size=5&page=3&searchType=2&searchTerm=+ana+&orderBy=createdAt&directionOrderBy=DESC"), clientSort, sharedQuery.Sort{})
	assert.Equal(t, 5, q.Size)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 2, q.SearchType)
	assert.Equal(t, "ana", q.SearchTerm)
	assert.Equal(t, sharedQuery.Sort{Field: "created_at", Desc: true}, q.Sort)
}

func TestDateRangeFilter_RequiresBothEnds(t *testing.T) {
	assert.Nil(t, DateRangeFilter(newContext("filterByDateRangeMin=2024-01-01"), "filterByDateRange", "date"))

	f := DateRangeFilter(newContext("filterByDateRangeMin=2024-01-01&filterByDateRangeMax=2024-01-31"), "filterByDateRange", "date")
	conds := f.ToConditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), conds[1].Value)
}

func TestScalarFilters(t *testing.T) {
	c := newContext("filterByGender=F&filterByPaymentMethod=0&filterByDifficulty=2&filterByHasVideo=true")

	assert.Equal(t, sharedDomain.EqualCriteria{Field: "gender", Value: "F"}, TextFilter(c, "filterByGender", "gender"))
	assert.Nil(t, IntFilter(c, "filterByPaymentMethod", "payment_method", 0))
	assert.Equal(t, sharedDomain.EqualCriteria{Field: "difficulty", Value: 2}, IntFilter(c, "filterByDifficulty", "difficulty", -1))
	assert.Equal(t, sharedDomain.EqualCriteria{Field: "has_video", Value: true}, BoolFilter(c, "filterByHasVideo", "has_video"))
	assert.Nil(t, BoolFilter(c, "filterByMembershipActive", "active"))
}

func TestSearchFilter_FallbackColumns(t *testing.T) {
	columns := map[int][]string{1: {"names", "last_names"}, 2: {"id_number"}}
	q := sharedQuery.ListQuery{SearchType: 9, SearchTerm: "x"}
	conds := SearchFilter(q, columns, 1).ToConditions()
	assert.Len(t, conds[0].Any, 2)
}
