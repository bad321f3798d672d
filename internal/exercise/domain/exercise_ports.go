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
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

// ---------- Interfaces (Ports) ----------

// ExerciseRepository lo implementan SQLite y MongoDB.
type ExerciseRepository interface {
	Create(ctx context.Context, e *Exercise, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Exercise, error)
	Update(ctx context.Context, e *Exercise, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Exercise], error)
}

const CacheAggregate = "exercise"
