package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/client/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

const cacheTTL = 60

// ClientService define los casos de uso de socios.
type ClientService struct {
	repo  domain.ClientRepository
	cache sharedCache.Cache
	log   *zap.Logger
	now   func() time.Time
}

func NewClientService(repo domain.ClientRepository, cache sharedCache.Cache, log *zap.Logger) *ClientService {
	return &ClientService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ClientService) CreateClient(ctx context.Context, c *domain.Client, actor int64) (*domain.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := s.now().Truncate(time.Second)
	c.ID = 0
	c.CreatedBy = actor
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil

	// El repositorio completa AggregateID al conocer el id generado.
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.ClientCreated, c)
	if err := s.repo.Create(ctx, c, evt); err != nil {
		return nil, err
	}

	s.log.Info("Cliente creado", zap.Int64("id", c.ID), zap.Int64("actor", actor))
	return c, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, c *domain.Client, actor int64) (*domain.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = current.CreatedBy
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now().Truncate(time.Second)

	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, c.PartitionKey(), domain.ClientUpdated, c)
	if err := s.repo.Update(ctx, c, evt); err != nil {
		return nil, err
	}

	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, c.ID), s.log)
	s.log.Info("Cliente actualizado", zap.Int64("id", c.ID), zap.Int64("actor", actor))
	return c, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int64, actor int64) error {
	payload := domain.ClientRemoved{ID: id, DeletedBy: actor}
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, (&domain.Client{ID: id}).PartitionKey(), domain.ClientDeleted, payload)

	if err := s.repo.DeleteByID(ctx, id, s.now(), evt); err != nil {
		return err
	}

	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), s.log)
	s.log.Info("Cliente eliminado", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

// GetClient obtiene un socio (primero intenta desde caché).
func (s *ClientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), cacheTTL, s.log,
		func(ctx context.Context) (*domain.Client, error) {
			var c *domain.Client
			err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
				var err error
				c, err = s.repo.GetByID(ctx, id)
				if errors.Is(err, domain.ErrClientNotFound) {
					return sharedUtils.Permanent(err)
				}
				return err
			})
			return c, err
		})
}

func (s *ClientService) ListClients(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Client], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}

// Now expone el reloj del servicio para los filtros que dependen de la fecha.
func (s *ClientService) Now() time.Time {
	return s.now()
}
