package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/ledger/domain"
	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

// AnalyticsWriter es lo que el consumidor necesita del almacén analítico.
type AnalyticsWriter interface {
	LogBatch(ctx context.Context, entries []*domain.Entry, eventType string) error
}

// LedgerConsumer replica los eventos del libro en el almacén analítico.
type LedgerConsumer struct {
	analytics AnalyticsWriter
	log       *zap.Logger
}

func NewLedgerConsumer(analytics AnalyticsWriter, logger *zap.Logger) *LedgerConsumer {
	return &LedgerConsumer{analytics: analytics, log: logger}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *LedgerConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for ledger", zap.String("key", key), zap.Error(err))
		return
	}

	if !strings.HasPrefix(base.Type, string(domain.KindIncome)+".") && !strings.HasPrefix(base.Type, string(domain.KindExpense)+".") {
		c.log.Warn("Unknown ledger event type", zap.String("type", base.Type), zap.String("key", key))
		return
	}

	sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(e domain.Entry) {
		ctxLog, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := c.analytics.LogBatch(ctxLog, []*domain.Entry{&e}, base.Type); err != nil {
			c.log.Warn("Failed to log ledger event", zap.String("type", base.Type), zap.String("key", key), zap.Error(err))
			return
		}
		c.log.Debug("Ledger event logged", zap.String("type", base.Type), zap.String("key", key))
	})
}
