package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
)

// MockOutboxRepository simula el repositorio de outbox que lee el relayer.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]sharedDomain.OutboxEvent)
	return events, args.Error(1)
}

func (m *MockOutboxRepository) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher simula un EventBus.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}
