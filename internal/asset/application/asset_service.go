package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/asset/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

const cacheTTL = 300

type AssetService struct {
	repo  domain.AssetRepository
	cache sharedCache.Cache
	log   *zap.Logger
	now   func() time.Time
}

func NewAssetService(repo domain.AssetRepository, cache sharedCache.Cache, log *zap.Logger) *AssetService {
	return &AssetService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *AssetService) CreateAsset(ctx context.Context, a *domain.Asset, actor int64) (*domain.Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := s.now().Truncate(time.Second)
	a.ID = 0
	a.CreatedBy = actor
	a.CreatedAt = now
	a.UpdatedAt = now
	a.DeletedAt = nil

	if err := s.repo.Create(ctx, a, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.AssetCreated, a)); err != nil {
		return nil, err
	}
	s.log.Info("Equipo registrado", zap.Int64("id", a.ID), zap.String("code", a.Code), zap.Int64("actor", actor))
	return a, nil
}

func (s *AssetService) UpdateAsset(ctx context.Context, a *domain.Asset, actor int64) (*domain.Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.CreatedBy = current.CreatedBy
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = s.now().Truncate(time.Second)

	if err := s.repo.Update(ctx, a, sharedDomain.NewOutboxEvent(domain.CacheAggregate, a.PartitionKey(), domain.AssetUpdated, a)); err != nil {
		return nil, err
	}
	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, a.ID), s.log)
	if a.NeedsAttention() && !current.NeedsAttention() {
		s.log.Warn("⚠️ Equipo fuera de servicio", zap.Int64("id", a.ID), zap.String("condition", a.Condition))
	}
	return a, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id int64, actor int64) error {
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, (&domain.Asset{ID: id}).PartitionKey(), domain.AssetDeleted,
		domain.AssetRemoved{ID: id, DeletedBy: actor})
	if err := s.repo.DeleteByID(ctx, id, s.now(), evt); err != nil {
		return err
	}
	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), s.log)
	s.log.Info("Equipo dado de baja", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

func (s *AssetService) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), cacheTTL, s.log,
		func(ctx context.Context) (*domain.Asset, error) {
			var a *domain.Asset
			err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
				var err error
				a, err = s.repo.GetByID(ctx, id)
				if errors.Is(err, domain.ErrAssetNotFound) {
					return sharedUtils.Permanent(err)
				}
				return err
			})
			return a, err
		})
}

func (s *AssetService) ListAssets(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Asset], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}
