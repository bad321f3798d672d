package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/ledger/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

const (
	cacheTTL       = 60
	aggregateType  = "ledger"
	balanceMaxSpan = 5 * 365 * 24 * time.Hour
)

// LedgerService gestiona ingresos, egresos y el balance mensual.
type LedgerService struct {
	repo      domain.EntryRepository
	analytics domain.LedgerAnalyticsRepository // opcional
	cache     sharedCache.Cache
	log       *zap.Logger
	now       func() time.Time
}

func NewLedgerService(repo domain.EntryRepository, analytics domain.LedgerAnalyticsRepository, cache sharedCache.Cache, log *zap.Logger) *LedgerService {
	return &LedgerService{
		repo:      repo,
		analytics: analytics,
		cache:     cache,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func cacheKey(kind domain.Kind, id int64) string {
	return sharedCache.KeyByID(string(kind), id)
}

func (s *LedgerService) CreateEntry(ctx context.Context, e *domain.Entry, actor int64) (*domain.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	now := s.now().Truncate(time.Second)
	e.ID = 0
	e.CreatedBy = actor
	e.CreatedAt = now
	e.UpdatedAt = now
	e.DeletedAt = nil

	evt := sharedDomain.NewOutboxEvent(aggregateType, "", domain.EventType(e.Kind, "created"), e)
	if err := s.repo.Create(ctx, e, evt); err != nil {
		return nil, err
	}

	s.log.Info("Movimiento registrado", zap.String("kind", string(e.Kind)), zap.Int64("id", e.ID), zap.Float64("amount", e.Amount))
	return e, nil
}

func (s *LedgerService) UpdateEntry(ctx context.Context, e *domain.Entry, actor int64) (*domain.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, e.Kind, e.ID)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = current.CreatedBy
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = s.now().Truncate(time.Second)

	evt := sharedDomain.NewOutboxEvent(aggregateType, e.PartitionKey(), domain.EventType(e.Kind, "updated"), e)
	if err := s.repo.Update(ctx, e, evt); err != nil {
		return nil, err
	}

	sharedCache.Invalidate(ctx, s.cache, cacheKey(e.Kind, e.ID), s.log)
	s.log.Info("Movimiento actualizado", zap.String("kind", string(e.Kind)), zap.Int64("id", e.ID), zap.Int64("actor", actor))
	return e, nil
}

func (s *LedgerService) DeleteEntry(ctx context.Context, kind domain.Kind, id int64, actor int64) error {
	current, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}

	at := s.now()
	current.DeletedAt = &at
	evt := sharedDomain.NewOutboxEvent(aggregateType, current.PartitionKey(), domain.EventType(kind, "deleted"), current)
	if err := s.repo.DeleteByID(ctx, kind, id, at, evt); err != nil {
		return err
	}

	sharedCache.Invalidate(ctx, s.cache, cacheKey(kind, id), s.log)
	s.log.Info("Movimiento eliminado", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

func (s *LedgerService) GetEntry(ctx context.Context, kind domain.Kind, id int64) (*domain.Entry, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, cacheKey(kind, id), cacheTTL, s.log,
		func(ctx context.Context) (*domain.Entry, error) {
			var e *domain.Entry
			err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
				var err error
				e, err = s.repo.GetByID(ctx, kind, id)
				if errors.Is(err, domain.ErrEntryNotFound) {
					return sharedUtils.Permanent(err)
				}
				return err
			})
			return e, err
		})
}

func (s *LedgerService) ListEntries(ctx context.Context, kind domain.Kind, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.Entry], error) {
	return s.repo.List(ctx, kind, criteria, q.Sort, q.Pagination())
}

// Balance devuelve ingresos, egresos y saldo por mes entre from y to.
// Usa ClickHouse si está configurado; si falla, calcula desde el repositorio.
func (s *LedgerService) Balance(ctx context.Context, from, to time.Time) ([]domain.MonthlyBalance, error) {
	if to.Before(from) || to.Sub(from) > balanceMaxSpan {
		return nil, domain.ErrInvalidPeriod
	}

	if s.analytics != nil {
		balance, err := s.analytics.MonthlyBalance(ctx, from, to)
		if err == nil {
			return balance, nil
		}
		s.log.Warn("⚠️ Balance desde ClickHouse falló, usando el repositorio", zap.Error(err))
	}

	incomes, err := s.repo.MonthlyTotals(ctx, domain.KindIncome, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.MonthlyTotals(ctx, domain.KindExpense, from, to)
	if err != nil {
		return nil, err
	}
	return domain.MergeBalance(incomes, expenses), nil
}
