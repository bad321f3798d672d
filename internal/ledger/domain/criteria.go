package domain

// Tipos de búsqueda de movimientos.
const (
	SearchByDescription = 1
	SearchByReference   = 2
)

var SearchColumns = map[int][]string{
	SearchByDescription: {"description"},
	SearchByReference:   {"reference"},
}

// SortColumns es la lista blanca de orderBy.
var SortColumns = map[string]string{
	"date":        "date",
	"amount":      "amount",
	"description": "description",
	"category":    "category",
}
