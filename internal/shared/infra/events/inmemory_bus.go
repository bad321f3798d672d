package events

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Message es lo que recibe un suscriptor del bus en memoria.
type Message struct {
	Key   string
	Value []byte
}

// InMemoryEventBus sustituye a Kafka en local: un slice de suscriptores por topic.
type InMemoryEventBus struct {
	subscribers map[string][]chan Message
	mu          sync.RWMutex
	log         *zap.Logger
}

var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string][]chan Message),
		log:         log,
	}
}

// Publish serializa el evento y lo reparte sin bloquear; si el buffer de un
// suscriptor está lleno el mensaje se descarta para ese suscriptor.
func (b *InMemoryEventBus) Publish(ctx context.Context, topic string, event interface{}) error {
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := Message{Value: payloadBytes}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = keyer.PartitionKey()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subChan := range b.subscribers[topic] {
		select {
		case subChan <- msg:
		default:
			b.log.Warn("Suscriptor lleno, evento descartado", zap.String("topic", topic))
		}
	}
	return nil
}

// Subscribe registra un oyente del topic con un buffer de bufferSize mensajes.
func (b *InMemoryEventBus) Subscribe(topic string, bufferSize int) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan Message, bufferSize)
	b.subscribers[topic] = append(b.subscribers[topic], subChan)
	return subChan
}

// Listen entrega al handler los mensajes del canal hasta que ctx se cancela.
func Listen(ctx context.Context, ch <-chan Message, handler MessageHandler) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-ch:
				handler.HandleMessage(ctx, msg.Key, msg.Value)
			}
		}
	}()
}
