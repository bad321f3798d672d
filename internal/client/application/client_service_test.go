package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/client/domain"
	"github.com/davicafu/gymlab/internal/mocks"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Create(ctx context.Context, c *domain.Client, evt sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, c, evt)
	c.ID = 42
	return args.Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, c *domain.Client, evt sharedDomain.OutboxEvent) error {
	return m.Called(ctx, c, evt).Error(0)
}

func (m *mockClientRepo) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return m.Called(ctx, id, at, evt).Error(0)
}

func (m *mockClientRepo) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Client], error) {
	args := m.Called(ctx, criteria, sort, pagination)
	return args.Get(0).(sharedQuery.Page[domain.Client]), args.Error(1)
}

func validClient() *domain.Client {
	return &domain.Client{Names: "Ana", LastNames: "Pérez", IDNumber: "0101", Gender: domain.GenderFemale}
}

func TestCreateClient_WritesOutboxEvent(t *testing.T) {
	repo := new(mockClientRepo)
	service := NewClientService(repo, mocks.NewDummyCache(), zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(evt sharedDomain.OutboxEvent) bool {
		return evt.EventType == domain.ClientCreated && evt.AggregateType == "client"
	})).Return(nil).Once()

	c, err := service.CreateClient(context.Background(), validClient(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, int64(7), c.CreatedBy)
	assert.False(t, c.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreateClient_InvalidIsRejectedBeforeRepo(t *testing.T) {
	repo := new(mockClientRepo)
	service := NewClientService(repo, mocks.NewDummyCache(), zap.NewNop())

	_, err := service.CreateClient(context.Background(), &domain.Client{Names: "Ana"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetClient_CacheAside(t *testing.T) {
	repo := new(mockClientRepo)
	cache := mocks.NewDummyCache()
	service := NewClientService(repo, cache, zap.NewNop())

	stored := validClient()
	stored.ID = 5
	repo.On("GetByID", mock.Anything, int64(5)).Return(stored, nil).Once()

	got, err := service.GetClient(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Names)

	key := sharedCache.KeyByID("client", 5)
	assert.Eventually(t, func() bool { return cache.Has(key) }, time.Second, 5*time.Millisecond)

	// Segunda lectura desde caché: el repo solo se llamó una vez.
	_, err = service.GetClient(context.Background(), 5)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetClient_NotFoundIsNotRetried(t *testing.T) {
	repo := new(mockClientRepo)
	service := NewClientService(repo, mocks.NewDummyCache(), zap.NewNop())

	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrClientNotFound)

	_, err := service.GetClient(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestUpdateClient_KeepsCreationDataAndInvalidatesCache(t *testing.T) {
	repo := new(mockClientRepo)
	cache := mocks.NewDummyCache()
	service := NewClientService(repo, cache, zap.NewNop())

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := validClient()
	current.ID = 3
	current.CreatedBy = 1
	current.CreatedAt = created

	key := sharedCache.KeyByID("client", 3)
	require.NoError(t, cache.Set(context.Background(), key, current, 0))

	repo.On("GetByID", mock.Anything, int64(3)).Return(current, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	changed := validClient()
	changed.ID = 3
	changed.Phone = "0999"
	updated, err := service.UpdateClient(context.Background(), changed, 2)
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, int64(1), updated.CreatedBy)
	assert.False(t, cache.Has(key))
}

func TestDeleteClient_PropagatesNotFound(t *testing.T) {
	repo := new(mockClientRepo)
	service := NewClientService(repo, mocks.NewDummyCache(), zap.NewNop())

	repo.On("DeleteByID", mock.Anything, int64(8), mock.Anything, mock.Anything).Return(domain.ErrClientNotFound)
	err := service.DeleteClient(context.Background(), 8, 1)
	assert.True(t, errors.Is(err, domain.ErrClientNotFound))
}

func TestListClients_UsesPagination(t *testing.T) {
	repo := new(mockClientRepo)
	service := NewClientService(repo, mocks.NewDummyCache(), zap.NewNop())

	q := sharedQuery.ListQuery{Page: 3, Size: 5, Sort: sharedQuery.Sort{Field: "names"}}
	repo.On("List", mock.Anything, mock.Anything, q.Sort, sharedQuery.OffsetPagination{Limit: 5, Offset: 10}).
		Return(sharedQuery.Page[domain.Client]{TotalRecords: 12}, nil).Once()

	page, err := service.ListClients(context.Background(), sharedDomain.StatusCriteria{}, q)
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalRecords)
	repo.AssertExpectations(t)
}
