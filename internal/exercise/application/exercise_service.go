package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/exercise/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

const cacheTTL = 300

type ExerciseService struct {
	repo  domain.ExerciseRepository
	cache sharedCache.Cache
	log   *zap.Logger
	now   func() time.Time
}

func NewExerciseService(repo domain.ExerciseRepository, cache sharedCache.Cache, log *zap.Logger) *ExerciseService {
	return &ExerciseService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExerciseService) CreateExercise(ctx context.Context, e *domain.Exercise, actor int64) (*domain.Exercise, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := s.now().Truncate(time.Second)
	e.ID = 0
	e.CreatedBy = actor
	e.CreatedAt = now
	e.UpdatedAt = now
	e.DeletedAt = nil

	if err := s.repo.Create(ctx, e, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.ExerciseCreated, e)); err != nil {
		return nil, err
	}
	s.log.Info("Ejercicio creado", zap.Int64("id", e.ID), zap.Int64("actor", actor))
	return e, nil
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, e *domain.Exercise, actor int64) (*domain.Exercise, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = current.CreatedBy
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = s.now().Truncate(time.Second)

	if err := s.repo.Update(ctx, e, sharedDomain.NewOutboxEvent(domain.CacheAggregate, e.PartitionKey(), domain.ExerciseUpdated, e)); err != nil {
		return nil, err
	}
	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, e.ID), s.log)
	s.log.Info("Ejercicio actualizado", zap.Int64("id", e.ID), zap.Int64("actor", actor))
	return e, nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id int64, actor int64) error {
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, (&domain.Exercise{ID: id}).PartitionKey(), domain.ExerciseDeleted,
		domain.ExerciseRemoved{ID: id, DeletedBy: actor})
	if err := s.repo.DeleteByID(ctx, id, s.now(), evt); err != nil {
		return err
	}
	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), s.log)
	s.log.Info("Ejercicio eliminado", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

func (s *ExerciseService) GetExercise(ctx context.Context, id int64) (*domain.Exercise, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), cacheTTL, s.log,
		func(ctx context.Context) (*domain.Exercise, error) {
			var e *domain.Exercise
			err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
				var err error
				e, err = s.repo.GetByID(ctx, id)
				if errors.Is(err, domain.ErrExerciseNotFound) {
					return sharedUtils.Permanent(err)
				}
				return err
			})
			return e, err
		})
}

func (s *ExerciseService) ListExercises(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Exercise], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}
