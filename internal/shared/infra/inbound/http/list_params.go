package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

// ---------------- Parámetros comunes de /{entity}/list ----------------

// ParseListQuery lee size, page, searchType, searchTerm, orderBy y directionOrderBy.
// Es tolerante: un size no permitido vuelve a 10, page < 1 pasa a 1 y un orderBy
// desconocido usa defaultSort. sortColumns traduce el nombre del campo a su columna.
func ParseListQuery(c *gin.Context, sortColumns map[string]string, defaultSort sharedQuery.Sort) sharedQuery.ListQuery {
	q := sharedQuery.ListQuery{
		Page:       queryInt(c, "page", 1),
		Size:       queryInt(c, "size", sharedQuery.DefaultSize),
		SearchType: queryInt(c, "searchType", 1),
		SearchTerm: strings.TrimSpace(c.Query("searchTerm")),
		Sort:       defaultSort,
	}
	if !sharedQuery.IsValidSize(q.Size) {
		q.Size = sharedQuery.DefaultSize
	}
	if q.Page < 1 {
		q.Page = 1
	}

	if column, ok := sortColumns[c.Query("orderBy")]; ok {
		q.Sort = sharedQuery.Sort{
			Field: column,
			Desc:  strings.EqualFold(c.Query("directionOrderBy"), sharedQuery.DirectionDesc),
		}
	}
	return q
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}

// ---------------- Filtros filterBy* ----------------
// Cada helper devuelve nil cuando el filtro está en su valor "sin filtrar";
// CompositeCriteria ignora los nil.

// StatusFilter traduce filterByStatus (ausente, Inactivos, Todos).
func StatusFilter(c *gin.Context, column string) sharedDomain.Criteria {
	return sharedDomain.StatusCriteria{Status: c.Query("filterByStatus"), Column: column}
}

// TextFilter compara por igualdad cuando el parámetro no está vacío.
func TextFilter(c *gin.Context, param, column string) sharedDomain.Criteria {
	v := strings.TrimSpace(c.Query(param))
	if v == "" {
		return nil
	}
	return sharedDomain.EqualCriteria{Field: column, Value: v}
}

// IntFilter compara por igualdad cuando el valor es un entero distinto de unset.
func IntFilter(c *gin.Context, param, column string, unset int) sharedDomain.Criteria {
	v, err := strconv.Atoi(c.Query(param))
	if err != nil || v == unset {
		return nil
	}
	return sharedDomain.EqualCriteria{Field: column, Value: v}
}

// BoolFilter es el tri-estado: ausente o no booleano = sin filtrar.
func BoolFilter(c *gin.Context, param, column string) sharedDomain.Criteria {
	v, err := strconv.ParseBool(c.Query(param))
	if err != nil {
		return nil
	}
	return sharedDomain.EqualCriteria{Field: column, Value: v}
}

// DateRangeFilter lee {param}Min y {param}Max (YYYY-MM-DD). Solo filtra si
// llegan los dos extremos; el máximo incluye el día completo.
func DateRangeFilter(c *gin.Context, param, column string) sharedDomain.Criteria {
	from, errFrom := time.Parse(sharedUtils.DateLayout, c.Query(param+"Min"))
	to, errTo := time.Parse(sharedUtils.DateLayout, c.Query(param+"Max"))
	if errFrom != nil || errTo != nil {
		return nil
	}
	return sharedDomain.RangeCriteria{Field: column, Min: from.UTC(), Max: sharedUtils.EndOfDay(to.UTC())}
}

// NumberRangeFilter lee {param}Min y {param}Max como decimales.
func NumberRangeFilter(c *gin.Context, param, column string) sharedDomain.Criteria {
	lo, errLo := strconv.ParseFloat(c.Query(param+"Min"), 64)
	hi, errHi := strconv.ParseFloat(c.Query(param+"Max"), 64)
	if errLo != nil || errHi != nil {
		return nil
	}
	return sharedDomain.RangeCriteria{Field: column, Min: lo, Max: hi}
}

// SearchFilter aplica searchTerm sobre las columnas asociadas a searchType.
// Un searchType desconocido usa las columnas de fallback.
func SearchFilter(q sharedQuery.ListQuery, columns map[int][]string, fallback int) sharedDomain.Criteria {
	fields, ok := columns[q.SearchType]
	if !ok {
		fields = columns[fallback]
	}
	return sharedDomain.SearchCriteria{Fields: fields, Term: q.SearchTerm}
}
