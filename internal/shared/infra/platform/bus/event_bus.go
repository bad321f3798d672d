package bus

import "context"

// Keyer lo implementan los eventos que necesitan una clave de partición estable.
type Keyer interface {
	PartitionKey() string
}

// EventBus publica un evento en un topic. El formato del payload lo decide el adapter.
type EventBus interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}
