package domain

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq      Operator = "="
	OpNe      Operator = "<>"
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpLike    Operator = "LIKE"
	OpILike   Operator = "ILIKE"
	OpIsNull  Operator = "IS NULL"
	OpNotNull Operator = "IS NOT NULL"
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado.
// Si Any no está vacío, el criterio es un grupo OR de sus elementos
// y Field/Op/Value se ignoran.
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
	Any   []Criterion
}

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		if crit == nil {
			continue
		}
		all = append(all, crit.ToConditions()...)
	}
	if c.Operator == OpOr && len(all) > 1 {
		return []Criterion{{Any: all}}
	}
	return all
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// ---------------- Criterios comunes a todos los agregados ----------------

// Valores de filterByStatus. La ausencia del parámetro significa "solo activos".
const (
	StatusActive   = ""
	StatusInactive = "Inactivos"
	StatusAll      = "Todos"
)

// StatusCriteria filtra por borrado lógico. Column es "deleted_at" salvo que
// la consulta necesite el nombre calificado (ej. "m.deleted_at").
type StatusCriteria struct {
	Status string
	Column string
}

func (c StatusCriteria) ToConditions() []Criterion {
	column := c.Column
	if column == "" {
		column = "deleted_at"
	}
	switch c.Status {
	case StatusAll:
		return nil
	case StatusInactive:
		return []Criterion{{Field: column, Op: OpNotNull}}
	default:
		return []Criterion{{Field: column, Op: OpIsNull}}
	}
}

// EqualCriteria compara un campo por igualdad exacta.
type EqualCriteria struct {
	Field string
	Value interface{}
}

func (c EqualCriteria) ToConditions() []Criterion {
	return []Criterion{{Field: c.Field, Op: OpEq, Value: c.Value}}
}

// RangeCriteria filtra un campo entre Min y Max (ambos inclusivos).
// Solo se aplica cuando los dos extremos están definidos.
type RangeCriteria struct {
	Field string
	Min   interface{}
	Max   interface{}
}

func (c RangeCriteria) ToConditions() []Criterion {
	if c.Min == nil || c.Max == nil {
		return nil
	}
	return []Criterion{
		{Field: c.Field, Op: OpGte, Value: c.Min},
		{Field: c.Field, Op: OpLte, Value: c.Max},
	}
}

// SearchCriteria busca un texto (ILIKE) en cualquiera de las columnas.
type SearchCriteria struct {
	Fields []string
	Term   string
}

func (c SearchCriteria) ToConditions() []Criterion {
	if c.Term == "" || len(c.Fields) == 0 {
		return nil
	}
	conds := make([]Criterion, 0, len(c.Fields))
	for _, f := range c.Fields {
		conds = append(conds, Criterion{Field: f, Op: OpILike, Value: "%" + c.Term + "%"})
	}
	if len(conds) == 1 {
		return conds
	}
	return []Criterion{{Any: conds}}
}
