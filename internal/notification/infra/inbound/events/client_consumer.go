package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

// WelcomeSender es lo que el consumidor necesita del servicio de notificaciones.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, client *clientDomain.Client) error
}

// ClientConsumer escucha el topic de clientes y envía la bienvenida a las altas.
type ClientConsumer struct {
	notifier WelcomeSender
	log      *zap.Logger
}

func NewClientConsumer(notifier WelcomeSender, logger *zap.Logger) *ClientConsumer {
	return &ClientConsumer{notifier: notifier, log: logger}
}

func (c *ClientConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for notifications", zap.String("key", key), zap.Error(err))
		return
	}
	if base.Type != clientDomain.ClientCreated {
		return
	}

	sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(client clientDomain.Client) {
		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := c.notifier.SendWelcome(sendCtx, &client); err != nil {
			c.log.Warn("Failed to send welcome notification", zap.Int64("clientId", client.ID), zap.Error(err))
			return
		}
		c.log.Debug("Welcome notification handled", zap.Int64("clientId", client.ID))
	})
}
