package listquery

import (
	"reflect"
	"strconv"
)

const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// AllowedSizes son los tamaños de página que ofrece la interfaz.
var AllowedSizes = []int{5, 10, 15, 20, 50}

// State es el estado de consulta de una vista de listado.
type State[F Filters] struct {
	Page             int
	Size             int
	TotalRecords     int
	OrderBy          string
	DirectionOrderBy string
	SearchType       int
	SearchTerm       string
	Filters          F
}

// TotalPages es ceil(TotalRecords/Size), 0 si no hay registros.
func (s State[F]) TotalPages() int {
	if s.Size <= 0 || s.TotalRecords <= 0 {
		return 0
	}
	return (s.TotalRecords + s.Size - 1) / s.Size
}

// Query construye los parámetros activos en orden fijo: size, page, searchType,
// searchTerm, orderBy + directionOrderBy y por último los filtros.
func (s State[F]) Query() Query {
	var q Query
	q.Add("size", strconv.Itoa(s.Size))
	q.Add("page", strconv.Itoa(s.Page))
	q.Add("searchType", strconv.Itoa(s.SearchType))
	if s.SearchTerm != "" {
		q.Add("searchTerm", s.SearchTerm)
	}
	if s.OrderBy != "" {
		q.Add("orderBy", s.OrderBy)
		q.Add("directionOrderBy", s.DirectionOrderBy)
	}
	s.Filters.Encode(&q)
	return q
}

func toggle(direction string) string {
	if direction == DirectionAsc {
		return DirectionDesc
	}
	return DirectionAsc
}

// clone copia el estado sin compartir los punteros de los filtros
// (rangos y flags), para que comparar y publicar no dependa del aliasing.
func (s State[F]) clone() State[F] {
	out := s
	v := reflect.ValueOf(&out.Filters).Elem()
	v.Set(deepCopy(v))
	return out
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		c := reflect.New(v.Elem().Type())
		c.Elem().Set(deepCopy(v.Elem()))
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if f := c.Field(i); f.CanSet() {
				f.Set(deepCopy(v.Field(i)))
			}
		}
		return c
	default:
		return v
	}
}
