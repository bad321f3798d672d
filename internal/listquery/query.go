package listquery

import (
	"net/url"
	"strings"
)

// Query es una lista ordenada de parámetros. El orden de inserción se conserva
// para que la cadena resultante sea determinista.
type Query struct {
	params [][2]string
}

func (q *Query) Add(key, value string) {
	q.params = append(q.params, [2]string{key, value})
}

// Get devuelve el primer valor de key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q.params {
		if p[0] == key {
			return p[1], true
		}
	}
	return "", false
}

func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

func (q Query) Keys() []string {
	keys := make([]string, 0, len(q.params))
	for _, p := range q.params {
		keys = append(keys, p[0])
	}
	return keys
}

// Encode produce "k=v&k=v" escapando solo lo que exige la URL.
func (q Query) Encode() string {
	parts := make([]string, 0, len(q.params))
	for _, p := range q.params {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}
