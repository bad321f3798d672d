package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent representa un evento pendiente de publicar en el broker.
type OutboxEvent struct {
	ID            uuid.UUID   `json:"id"`
	AggregateType string      `json:"aggregate_type"` // ej. "client", "income", "exercise"
	AggregateID   string      `json:"aggregate_id"`
	EventType     string      `json:"event_type"` // ej. "client.created"
	Payload       interface{} `json:"payload"`    // JSON serializable
	CreatedAt     time.Time   `json:"created_at"`
	Processed     bool        `json:"processed"` // si ya se publicó
}

// NewOutboxEvent construye un evento listo para insertarse junto al cambio.
func NewOutboxEvent(aggregateType, aggregateID, eventType string, payload interface{}) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

// OutboxRepository es el puerto que usa el relayer.
type OutboxRepository interface {
	FetchPendingOutbox(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error
}
