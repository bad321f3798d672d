package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

type mockWelcome struct {
	mock.Mock
}

func (m *mockWelcome) SendWelcome(ctx context.Context, client *clientDomain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func message(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(sharedEvents.IntegrationEvent{Type: eventType, Key: "1", Timestamp: time.Now(), Data: raw})
	require.NoError(t, err)
	return payload
}

func TestClientConsumer_WelcomesNewClients(t *testing.T) {
	notifier := new(mockWelcome)
	notifier.On("SendWelcome", mock.Anything, mock.MatchedBy(func(c *clientDomain.Client) bool {
		return c.ID == 1 && c.Email == "ana@example.com"
	})).Return(nil).Once()

	consumer := NewClientConsumer(notifier, zap.NewNop())
	consumer.HandleMessage(context.Background(), "1", message(t, clientDomain.ClientCreated,
		clientDomain.Client{ID: 1, Names: "Ana", Email: "ana@example.com"}))

	notifier.AssertExpectations(t)
}

func TestClientConsumer_IgnoresOtherEvents(t *testing.T) {
	notifier := new(mockWelcome)
	consumer := NewClientConsumer(notifier, zap.NewNop())

	consumer.HandleMessage(context.Background(), "1", message(t, clientDomain.ClientUpdated, clientDomain.Client{ID: 1}))
	consumer.HandleMessage(context.Background(), "1", []byte("not json"))

	notifier.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.Calls)
}
