package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
	"github.com/davicafu/gymlab/internal/user/domain"
)

const cacheTTL = 60

// UserService define los casos de uso del personal.
type UserService struct {
	repo  domain.UserRepository
	cache sharedCache.Cache
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(repo domain.UserRepository, cache sharedCache.Cache, log *zap.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser exige contraseña.
func (s *UserService) CreateUser(ctx context.Context, u *domain.User, password string, actor int64) (*domain.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	now := s.now().Truncate(time.Second)
	u.ID = 0
	u.CreatedBy = actor
	u.CreatedAt = now
	u.UpdatedAt = now
	u.DeletedAt = nil

	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.UserCreated, u)
	if err := s.repo.Create(ctx, u, evt); err != nil {
		return nil, err
	}

	s.log.Info("Usuario creado", zap.Int64("id", u.ID), zap.String("role", u.Role), zap.Int64("actor", actor))
	return u, nil
}

// UpdateUser cambia la contraseña solo si password no está vacío.
func (s *UserService) UpdateUser(ctx context.Context, u *domain.User, password string, actor int64) (*domain.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	if password != "" {
		if err := u.SetPassword(password); err != nil {
			return nil, err
		}
	}

	current, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.CreatedBy = current.CreatedBy
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = s.now().Truncate(time.Second)

	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, u.PartitionKey(), domain.UserUpdated, u)
	if err := s.repo.Update(ctx, u, evt); err != nil {
		return nil, err
	}

	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, u.ID), s.log)
	s.log.Info("Usuario actualizado", zap.Int64("id", u.ID), zap.Int64("actor", actor))
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64, actor int64) error {
	if id == actor {
		return domain.ErrInvalidUser
	}
	evt := sharedDomain.NewOutboxEvent(domain.CacheAggregate, (&domain.User{ID: id}).PartitionKey(), domain.UserDeleted,
		domain.UserRemoved{ID: id, DeletedBy: actor})

	if err := s.repo.DeleteByID(ctx, id, s.now(), evt); err != nil {
		return err
	}

	sharedCache.Invalidate(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), s.log)
	s.log.Info("Usuario eliminado", zap.Int64("id", id), zap.Int64("actor", actor))
	return nil
}

// GetUser obtiene un usuario (primero intenta desde caché).
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, sharedCache.KeyByID(domain.CacheAggregate, id), cacheTTL, s.log,
		func(ctx context.Context) (*domain.User, error) {
			var u *domain.User
			err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
				var err error
				u, err = s.repo.GetByID(ctx, id)
				if errors.Is(err, domain.ErrUserNotFound) {
					return sharedUtils.Permanent(err)
				}
				return err
			})
			return u, err
		})
}

func (s *UserService) ListUsers(ctx context.Context, criteria sharedDomain.Criteria, q sharedQuery.ListQuery) (sharedQuery.Page[domain.User], error) {
	return s.repo.List(ctx, criteria, q.Sort, q.Pagination())
}

// EnsureAdmin crea el administrador inicial si username no existe todavía.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	_, err = s.CreateUser(ctx, &domain.User{Names: "Administrador", Username: username, Role: domain.RoleAdmin}, password, 0)
	if err == nil {
		s.log.Info("👤 Administrador inicial creado", zap.String("username", username))
	}
	return err
}
