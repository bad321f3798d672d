package domain

import (
	"time"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
)

// Tipos de búsqueda (searchType) de clientes.
const (
	SearchByNames    = 1
	SearchByIDNumber = 2
	SearchByEmail    = 3
)

// SearchColumns asocia cada searchType a las columnas donde se busca.
var SearchColumns = map[int][]string{
	SearchByNames:    {"names", "last_names"},
	SearchByIDNumber: {"id_number"},
	SearchByEmail:    {"email"},
}

// SortColumns es la lista blanca de orderBy.
var SortColumns = map[string]string{
	"names":            "names",
	"lastNames":        "last_names",
	"idNumber":         "id_number",
	"createdAt":        "created_at",
	"membershipEndsAt": "membership_ends_at",
}

// MembershipActiveCriteria filtra por membresía vigente (o no vigente) en Now.
type MembershipActiveCriteria struct {
	Active bool
	Now    time.Time
}

func (c MembershipActiveCriteria) ToConditions() []sharedDomain.Criterion {
	if c.Active {
		return []sharedDomain.Criterion{{Field: "membership_ends_at", Op: sharedDomain.OpGte, Value: c.Now}}
	}
	return []sharedDomain.Criterion{{Any: []sharedDomain.Criterion{
		{Field: "membership_ends_at", Op: sharedDomain.OpIsNull},
		{Field: "membership_ends_at", Op: sharedDomain.OpLt, Value: c.Now},
	}}}
}
