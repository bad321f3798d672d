package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

type TemplateService struct {
	repo     domain.TemplateRepository
	renderer domain.Renderer
	log      *zap.Logger
	now      func() time.Time
}

func NewTemplateService(repo domain.TemplateRepository, renderer domain.Renderer, log *zap.Logger) *TemplateService {
	return &TemplateService{
		repo:     repo,
		renderer: renderer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// validate comprueba además que el cuerpo se puede renderizar.
func (s *TemplateService) validate(t *domain.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.renderer.Render(t.Body); err != nil {
		return domain.ErrInvalidTemplate
	}
	return nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, t *domain.Template, actor int64) (*domain.Template, error) {
	if err := s.validate(t); err != nil {
		return nil, err
	}
	now := s.now().Truncate(time.Second)
	t.ID = 0
	t.CreatedBy = actor
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DeletedAt = nil

	if err := s.repo.Create(ctx, t, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.TemplateCreated, t)); err != nil {
		return nil, err
	}
	s.log.Info("Plantilla creada", zap.Int64("id", t.ID), zap.String("name", t.Name))
	return t, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, t *domain.Template, actor int64) (*domain.Template, error) {
	if err := s.validate(t); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.CreatedBy = current.CreatedBy
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = s.now().Truncate(time.Second)

	if err := s.repo.Update(ctx, t, sharedDomain.NewOutboxEvent(domain.CacheAggregate, t.PartitionKey(), domain.TemplateUpdated, t)); err != nil {
		return nil, err
	}
	s.log.Info("Plantilla actualizada", zap.Int64("id", t.ID), zap.Int64("actor", actor))
	return t, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id int64, actor int64) error {
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, (&domain.Template{ID: id}).PartitionKey(), domain.TemplateDeleted,
		domain.TemplateRemoved{ID: id, DeletedBy: actor})
	if err := s.repo.DeleteByID(ctx, id, s.now(), evt); err != nil {
		return err
	}
	s.log.Info("Plantilla eliminada", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id int64) (*domain.Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TemplateService) ListTemplates(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Template], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}
