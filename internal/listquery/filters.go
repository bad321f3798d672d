package listquery

import (
	"strconv"
	"time"
)

// Filters lo implementa el struct de filtros de cada entidad: añade a q solo
// los filtros activos (distintos de su valor "unset").
type Filters interface {
	Encode(q *Query)
}

// DateLayout es el formato de fecha de los rangos en la query.
const DateLayout = "2006-01-02"

// ---------------- Bloques de filtro ----------------

// Text está inactivo cuando vale "".
type Text string

func (t Text) Encode(q *Query, key string) {
	if t != "" {
		q.Add(key, string(t))
	}
}

// Number está inactivo cuando Value == Unset (0 o -1 según el campo).
type Number struct {
	Value int64
	Unset int64
}

func NewNumber(unset int64) Number {
	return Number{Value: unset, Unset: unset}
}

func (n Number) Active() bool { return n.Value != n.Unset }

// Set devuelve una copia con el nuevo valor.
func (n Number) Set(v int64) Number {
	n.Value = v
	return n
}

func (n Number) Encode(q *Query, key string) {
	if n.Active() {
		q.Add(key, strconv.FormatInt(n.Value, 10))
	}
}

// Flag es un tri-estado: nil significa "no filtrar".
type Flag struct {
	Value *bool
}

func FlagOf(v bool) Flag { return Flag{Value: &v} }

func (f Flag) Encode(q *Query, key string) {
	if f.Value != nil {
		q.Add(key, strconv.FormatBool(*f.Value))
	}
}

// DateRange se envía como {key}Min y {key}Max solo si ambos extremos están puestos.
type DateRange struct {
	Min *time.Time
	Max *time.Time
}

func Dates(from, to time.Time) DateRange { return DateRange{Min: &from, Max: &to} }

func (r DateRange) Encode(q *Query, key string) {
	if r.Min == nil || r.Max == nil {
		return
	}
	q.Add(key+"Min", r.Min.Format(DateLayout))
	q.Add(key+"Max", r.Max.Format(DateLayout))
}

// AmountRange funciona igual que DateRange con decimales.
type AmountRange struct {
	Min *float64
	Max *float64
}

func Amounts(lo, hi float64) AmountRange { return AmountRange{Min: &lo, Max: &hi} }

func (r AmountRange) Encode(q *Query, key string) {
	if r.Min == nil || r.Max == nil {
		return
	}
	q.Add(key+"Min", strconv.FormatFloat(*r.Min, 'f', -1, 64))
	q.Add(key+"Max", strconv.FormatFloat(*r.Max, 'f', -1, 64))
}

// Status filtra por borrado lógico. "" significa solo activos y no se envía.
type Status string

const (
	StatusActive   Status = ""
	StatusInactive Status = "Inactivos"
	StatusAll      Status = "Todos"
)

func (s Status) Encode(q *Query) {
	if s != StatusActive {
		q.Add("filterByStatus", string(s))
	}
}
