package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler lo implementa cualquier consumidor de eventos (ej. el de notificaciones).
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// ConsumerAdapter lee de un topic de Kafka y entrega cada mensaje al handler.
type ConsumerAdapter struct {
	reader  *kafka.Reader
	handler MessageHandler
	log     *zap.Logger
}

// NewKafkaReader crea un reader para topic dentro del grupo de consumo groupID.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
}

func NewConsumerAdapter(reader *kafka.Reader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Start lanza el bucle de consumo en una goroutine; termina al cancelar ctx.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	c.log.Info("🎧 Iniciando consumidor de Kafka...",
		zap.String("topic", c.reader.Config().Topic),
		zap.Strings("brokers", c.reader.Config().Brokers),
	)

	go func() {
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.log.Info("Consumidor de Kafka detenido.", zap.String("topic", c.reader.Config().Topic))
					return
				}
				c.log.Error("Error al leer mensaje de Kafka", zap.Error(err))
				continue
			}

			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
}
