package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/measurement/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// MeasurementService no usa caché: las medidas se consultan siempre en listados.
type MeasurementService struct {
	repo domain.MeasurementRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewMeasurementService(repo domain.MeasurementRepository, log *zap.Logger) *MeasurementService {
	return &MeasurementService{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *MeasurementService) CreateMeasurement(ctx context.Context, m *domain.Measurement, actor int64) (*domain.Measurement, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	now := s.now().Truncate(time.Second)
	m.ID = 0
	m.CreatedBy = actor
	m.CreatedAt = now
	m.UpdatedAt = now
	m.DeletedAt = nil

	if err := s.repo.Create(ctx, m, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.MeasurementCreated, m)); err != nil {
		return nil, err
	}
	s.log.Info("Medición registrada", zap.Int64("id", m.ID), zap.Int64("client_id", m.ClientID), zap.Int64("actor", actor))
	return s.repo.GetByID(ctx, m.ID)
}

func (s *MeasurementService) UpdateMeasurement(ctx context.Context, m *domain.Measurement, actor int64) (*domain.Measurement, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.CreatedBy = current.CreatedBy
	m.CreatedAt = current.CreatedAt
	m.UpdatedAt = s.now().Truncate(time.Second)

	if err := s.repo.Update(ctx, m, sharedDomain.NewOutboxEvent(domain.CacheAggregate, m.PartitionKey(), domain.MeasurementUpdated, m)); err != nil {
		return nil, err
	}
	s.log.Info("Medición actualizada", zap.Int64("id", m.ID), zap.Int64("actor", actor))
	return s.repo.GetByID(ctx, m.ID)
}

func (s *MeasurementService) DeleteMeasurement(ctx context.Context, id int64, actor int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	at := s.now()
	m.DeletedAt = &at
	if err := s.repo.DeleteByID(ctx, id, at, sharedDomain.NewOutboxEvent(domain.CacheAggregate, m.PartitionKey(), domain.MeasurementDeleted, m)); err != nil {
		return err
	}
	s.log.Info("Medición eliminada", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

func (s *MeasurementService) GetMeasurement(ctx context.Context, id int64) (*domain.Measurement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MeasurementService) ListMeasurements(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Measurement], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}
