package domain

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEntry  = errors.New("invalid entry")
	ErrInvalidPeriod = errors.New("invalid period")
)

// ---------- Interfaces (Ports) ----------

// EntryRepository persiste ingresos y egresos; kind elige la tabla.
type EntryRepository interface {
	Create(ctx context.Context, e *Entry, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, kind Kind, id int64) (*Entry, error)
	Update(ctx context.Context, e *Entry, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, kind Kind, id int64, at time.Time, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, kind Kind, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Entry], error)

	// MonthlyTotals suma los movimientos activos de kind entre from y to, por mes.
	MonthlyTotals(ctx context.Context, kind Kind, from, to time.Time) ([]MonthlyTotal, error)
}

// LedgerAnalyticsRepository es el almacén analítico opcional (ClickHouse).
type LedgerAnalyticsRepository interface {
	LogBatch(ctx context.Context, entries []*Entry, eventType string) error
	MonthlyBalance(ctx context.Context, from, to time.Time) ([]MonthlyBalance, error)
}
