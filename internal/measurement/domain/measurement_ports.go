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
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrInvalidMeasurement  = errors.New("invalid measurement")
	ErrUnknownClient       = errors.New("client does not exist")
)

// MeasurementRepository. Los criterios usan columnas calificadas (m.*, c.*)
// porque el listado va unido a la tabla de socios.
type MeasurementRepository interface {
	// Devuelve ErrUnknownClient si el socio no existe.
	Create(ctx context.Context, m *Measurement, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Measurement, error)
	Update(ctx context.Context, m *Measurement, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Measurement], error)
}

const CacheAggregate = "measurement"
