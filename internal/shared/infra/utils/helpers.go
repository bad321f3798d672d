package utils

import "time"

// Ternary es un operador ternario genérico
func Ternary[T any](condition bool, ifTrue, ifFalse T) T {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Ptr devuelve un puntero al valor (útil para filtros opcionales).
func Ptr[T any](v T) *T {
	return &v
}

// DateLayout es el formato de fecha que viaja en los query params.
const DateLayout = "2006-01-02"

// EndOfDay lleva una fecha al último instante de ese día, para rangos inclusivos.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
