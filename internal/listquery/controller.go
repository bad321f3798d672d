package listquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/davicafu/gymlab/internal/apiclient"
)

// Getter es el transporte que usa el controlador (normalmente *apiclient.Client).
type Getter interface {
	Get(ctx context.Context, path, rawQuery string, out interface{}) error
}

// StalePolicy decide qué hacer con respuestas que llegan desordenadas.
type StalePolicy int

const (
	// LatestIssuedWins descarta una respuesta si ya se aplicó otra emitida después.
	LatestIssuedWins StalePolicy = iota
	// LastResolvedWins aplica siempre la última respuesta en llegar.
	LastResolvedWins
)

// Schema describe una entidad listable.
type Schema[T any, F Filters] struct {
	Endpoint          string // ej. "/client"
	ItemsKey          string // ej. "clients"
	NewFilters        func() F
	IDOf              func(T) int64
	DefaultSearchType int
	DefaultSize       int
}

// FetchResult es el resultado de un Fetch. Items y TotalRecords solo tienen
// sentido cuando OK es true.
type FetchResult[T any] struct {
	OK            bool
	Logout        bool
	Stale         bool
	PageCorrected bool
	Items         []T
	TotalRecords  int
	Err           error
}

// Controller guarda el estado de consulta de una vista y lo sincroniza con el
// backend. Es seguro para uso concurrente.
type Controller[T any, F Filters] struct {
	schema Schema[T, F]
	getter Getter
	policy StalePolicy

	mu        sync.Mutex
	state     State[F]
	items     []T
	editingID int64
	issued    uint64
	applied   uint64

	subMu   sync.Mutex
	subs    map[int]func(State[F])
	nextSub int
}

// Option ajusta la configuración de New.
type Option func(*options)

type options struct {
	policy StalePolicy
}

// WithStalePolicy elige la política para respuestas desordenadas
// (por defecto LatestIssuedWins).
func WithStalePolicy(p StalePolicy) Option {
	return func(o *options) { o.policy = p }
}

// New crea un controlador en la página 1, con el tamaño por defecto del
// esquema (10 si no hay), dirección DESC y los filtros unset de la entidad.
func New[T any, F Filters](schema Schema[T, F], getter Getter, opts ...Option) *Controller[T, F] {
	o := options{policy: LatestIssuedWins}
	for _, opt := range opts {
		opt(&o)
	}
	size := schema.DefaultSize
	if size == 0 {
		size = 10
	}
	return &Controller[T, F]{
		schema: schema,
		getter: getter,
		policy: o.policy,
		state: State[F]{
			Page:             1,
			Size:             size,
			DirectionOrderBy: DirectionDesc,
			SearchType:       schema.DefaultSearchType,
			Filters:          schema.NewFilters(),
		},
		subs: make(map[int]func(State[F])),
	}
}

// ---------------- Lectura ----------------

// Snapshot devuelve una copia profunda del estado: escribir a través de sus
// punteros no altera el controlador.
func (c *Controller[T, F]) Snapshot() State[F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller[T, F]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T, F]) TotalPages() int {
	return c.Snapshot().TotalPages()
}

func (c *Controller[T, F]) Query() Query {
	return c.Snapshot().Query()
}

func (c *Controller[T, F]) QueryString() string {
	return c.Query().Encode()
}

func (c *Controller[T, F]) Schema() Schema[T, F] {
	return c.schema
}

// ---------------- Observadores ----------------

// Subscribe registra fn, que recibe una llamada por cada transición del estado
// de consulta. La función devuelta cancela la suscripción.
func (c *Controller[T, F]) Subscribe(fn func(State[F])) (cancel func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller[T, F]) notify(s State[F]) {
	c.subMu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(State[F]), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// update aplica mutate bajo el lock y notifica si el estado de consulta cambió.
func (c *Controller[T, F]) update(mutate func(s *State[F])) {
	c.mu.Lock()
	before := c.state.clone()
	mutate(&c.state)
	// Los punteros que deja mutate pueden seguir en manos del llamador.
	c.state = c.state.clone()
	after := c.state.clone()
	changed := !reflect.DeepEqual(before, after)
	c.mu.Unlock()

	if changed {
		c.notify(after)
	}
}

// ---------------- Setters ----------------

// Los setters no validan rangos: la corrección de página la hace Fetch.

func (c *Controller[T, F]) ChangePage(page int) {
	c.update(func(s *State[F]) { s.Page = page })
}

func (c *Controller[T, F]) ChangeSize(size int) {
	c.update(func(s *State[F]) { s.Size = size })
}

func (c *Controller[T, F]) ChangeSearchType(searchType int) {
	c.update(func(s *State[F]) { s.SearchType = searchType })
}

func (c *Controller[T, F]) ChangeSearchTerm(term string) {
	c.update(func(s *State[F]) { s.SearchTerm = term })
}

// ChangeOrderBy fija el campo de orden e invierte la dirección siempre,
// también cuando el campo es nuevo.
func (c *Controller[T, F]) ChangeOrderBy(field string) {
	c.update(func(s *State[F]) {
		s.OrderBy = field
		s.DirectionOrderBy = toggle(s.DirectionOrderBy)
	})
}

// ChangeFilters modifica los filtros de la entidad en una sola transición.
func (c *Controller[T, F]) ChangeFilters(mutate func(f *F)) {
	c.update(func(s *State[F]) { mutate(&s.Filters) })
}

// ClearAllFilters devuelve filtros y searchTerm a sus valores unset en una
// sola transición.
func (c *Controller[T, F]) ClearAllFilters() {
	c.update(func(s *State[F]) {
		s.Filters = c.schema.NewFilters()
		s.SearchTerm = ""
	})
}

// ---------------- Edición ----------------

// SetActiveEditingID selecciona un elemento; 0 significa "ninguno / creando".
func (c *Controller[T, F]) SetActiveEditingID(id int64) {
	c.mu.Lock()
	c.editingID = id
	c.mu.Unlock()
}

func (c *Controller[T, F]) ResetEditing() {
	c.SetActiveEditingID(0)
}

func (c *Controller[T, F]) ActiveEditingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// ActiveEntity busca el elemento seleccionado entre los últimos items.
// Devuelve false si no hay selección o el id no está en la página actual.
func (c *Controller[T, F]) ActiveEntity() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.editingID == 0 {
		return zero, false
	}
	for _, item := range c.items {
		if c.schema.IDOf(item) == c.editingID {
			return item, true
		}
	}
	return zero, false
}

// ---------------- Fetch ----------------

// Fetch hace una única petición GET {endpoint}/list con el estado actual.
// Ante 401/403 devuelve Logout sin tocar el estado; ante cualquier otro error
// devuelve OK=false y conserva items y totalRecords. No reintenta.
func (c *Controller[T, F]) Fetch(ctx context.Context) FetchResult[T] {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	query := c.state.Query().Encode()
	c.mu.Unlock()

	items, total, err := c.get(ctx, query)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return FetchResult[T]{Logout: true, Err: err}
		}
		return FetchResult[T]{Err: err}
	}

	c.mu.Lock()
	if c.policy == LatestIssuedWins && seq < c.applied {
		c.mu.Unlock()
		return FetchResult[T]{Stale: true}
	}
	if seq > c.applied {
		c.applied = seq
	}
	c.items = items
	c.state.TotalRecords = total
	corrected := false
	if pages := c.state.TotalPages(); total > 0 && c.state.Page > 1 && c.state.Page > pages {
		c.state.Page--
		corrected = true
	}
	after := c.state.clone()
	c.mu.Unlock()

	if corrected {
		c.notify(after)
	}
	return FetchResult[T]{OK: true, PageCorrected: corrected, Items: append([]T(nil), items...), TotalRecords: total}
}

func (c *Controller[T, F]) get(ctx context.Context, rawQuery string) ([]T, int, error) {
	var data map[string]json.RawMessage
	if err := c.getter.Get(ctx, c.schema.Endpoint+"/list", rawQuery, &data); err != nil {
		return nil, 0, err
	}
	rawItems, ok := data[c.schema.ItemsKey]
	if !ok {
		return nil, 0, fmt.Errorf("%w: response has no %q", apiclient.ErrTransport, c.schema.ItemsKey)
	}
	var items []T
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, 0, fmt.Errorf("%w: decoding %s: %v", apiclient.ErrTransport, c.schema.ItemsKey, err)
	}
	var total int
	if err := json.Unmarshal(data["totalRecords"], &total); err != nil {
		return nil, 0, fmt.Errorf("%w: decoding totalRecords: %v", apiclient.ErrTransport, err)
	}
	return items, total, nil
}

// Settle repite Fetch mientras la página se vaya corrigiendo, paso a paso,
// hasta que sea válida. Devuelve el último resultado.
func (c *Controller[T, F]) Settle(ctx context.Context) FetchResult[T] {
	for {
		res := c.Fetch(ctx)
		if !res.PageCorrected || ctx.Err() != nil {
			return res
		}
	}
}

// Watch es el efecto de una vista: un Fetch al empezar y uno por cada
// transición, entregando cada resultado a sink. Bloquea hasta que ctx termina
// y espera a los fetch en curso.
func (c *Controller[T, F]) Watch(ctx context.Context, sink func(FetchResult[T])) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		closed bool
	)
	fetch := func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink(c.Fetch(ctx))
		}()
	}

	cancel := c.Subscribe(func(State[F]) { fetch() })
	fetch()
	<-ctx.Done()
	cancel()

	mu.Lock()
	closed = true
	mu.Unlock()
	wg.Wait()
}
