package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/ledger/domain"
	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) LogBatch(ctx context.Context, entries []*domain.Entry, eventType string) error {
	return m.Called(ctx, entries, eventType).Error(0)
}

func message(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	msg, err := json.Marshal(sharedEvents.IntegrationEvent{Type: eventType, Timestamp: time.Now(), Data: raw})
	require.NoError(t, err)
	return msg
}

func TestLedgerConsumer_LogsEntries(t *testing.T) {
	writer := new(mockWriter)
	consumer := NewLedgerConsumer(writer, zap.NewNop())

	writer.On("LogBatch", mock.Anything, mock.MatchedBy(func(entries []*domain.Entry) bool {
		return len(entries) == 1 && entries[0].ID == 7 && entries[0].Amount == 30
	}), domain.IncomeCreated).Return(nil).Once()

	consumer.HandleMessage(context.Background(), "income:7", message(t, domain.IncomeCreated, domain.Entry{ID: 7, Kind: domain.KindIncome, Amount: 30}))
	writer.AssertExpectations(t)
}

func TestLedgerConsumer_IgnoresForeignAndBrokenMessages(t *testing.T) {
	writer := new(mockWriter)
	consumer := NewLedgerConsumer(writer, zap.NewNop())

	consumer.HandleMessage(context.Background(), "", []byte("not json"))
	consumer.HandleMessage(context.Background(), "", message(t, "client.created", map[string]int{"id": 1}))

	writer.AssertNotCalled(t, "LogBatch", mock.Anything, mock.Anything, mock.Anything)
}
