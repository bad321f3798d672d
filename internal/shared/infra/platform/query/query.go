package query

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// OffsetPagination para paginación clásica
type OffsetPagination struct {
	Limit  int
	Offset int
}

// Sort indica campo (columna ya validada) y dirección.
type Sort struct {
	Field string // ej. "created_at", "names", "amount"
	Desc  bool
}

// Tamaños de página aceptados por los listados.
var PageSizes = []int{5, 10, 15, 20, 50}

const DefaultSize = 10

// Direcciones tal y como viajan en directionOrderBy.
const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// ListQuery son los parámetros comunes de cualquier GET /{entity}/list.
type ListQuery struct {
	Page       int // 1-indexed
	Size       int
	SearchType int
	SearchTerm string
	Sort       Sort
}

// Pagination traduce page/size a limit/offset.
func (q ListQuery) Pagination() OffsetPagination {
	size := q.Size
	if !IsValidSize(size) {
		size = DefaultSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return OffsetPagination{Limit: size, Offset: (page - 1) * size}
}

// Page es el resultado de un listado: la página pedida y el total que cumple los filtros.
type Page[T any] struct {
	Items        []T
	TotalRecords int
}

// TotalPages devuelve ceil(total/size); 0 si no hay registros.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// IsValidSize indica si size pertenece a PageSizes.
func IsValidSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
