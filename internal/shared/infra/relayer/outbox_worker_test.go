package relayer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/mocks"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedDomainEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

type memberJoined struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

const (
	memberJoinedType  = "client.created"
	memberJoinedTopic = "gymlab.client"
)

func testRegistry() map[string]sharedDomainEvents.EventMetadata {
	return map[string]sharedDomainEvents.EventMetadata{
		memberJoinedType: {Type: reflect.TypeOf(memberJoined{}), Topic: memberJoinedTopic},
	}
}

func TestOutboxWorker_ProcessBatch_Success(t *testing.T) {
	// ARRANGE
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	eventID := uuid.New()
	testEvent := sharedDomain.OutboxEvent{
		ID:          eventID,
		AggregateID: "9",
		EventType:   memberJoinedType,
		Payload:     map[string]interface{}{"id": 9, "email": "test@example.com"},
	}

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()
	publisher.On("Publish", mock.Anything, memberJoinedTopic, mock.MatchedBy(func(e sharedDomainEvents.IntegrationEvent) bool {
		return e.Type == memberJoinedType && e.Key == "9" && string(e.Data) == `{"id":9,"email":"test@example.com"}`
	})).Return(nil).Once()
	repo.On("MarkOutboxProcessed", mock.Anything, eventID).Return(nil).Once()

	worker := NewOutboxWorker(repo, publisher, testRegistry(), 0, 10, zap.NewNop())

	// ACT
	worker.ProcessBatch(context.Background())

	// ASSERT
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxWorker_ProcessBatch_PublisherFails(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	testEvent := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: memberJoinedType, Payload: map[string]interface{}{}}

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("kafka is down")).Once()

	worker := NewOutboxWorker(repo, publisher, testRegistry(), 0, 10, zap.NewNop())
	worker.ProcessBatch(context.Background())

	repo.AssertCalled(t, "FetchPendingOutbox", mock.Anything, 10)
	publisher.AssertCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_UnknownEventType(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	testEvent := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: "unregistered.event", Payload: map[string]interface{}{}}
	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()

	worker := NewOutboxWorker(repo, publisher, testRegistry(), 0, 10, zap.NewNop())
	worker.ProcessBatch(context.Background())

	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_FetchError(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)
	repo.On("FetchPendingOutbox", mock.Anything, 5).Return(nil, errors.New("db down")).Once()

	worker := NewOutboxWorker(repo, publisher, testRegistry(), 0, 5, zap.NewNop())
	assert.NotPanics(t, func() { worker.ProcessBatch(context.Background()) })
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

// Verificación estática de que los mocks cumplen las interfaces.
var _ sharedDomain.OutboxRepository = (*mocks.MockOutboxRepository)(nil)
var _ sharedBus.EventBus = (*mocks.MockPublisher)(nil)
