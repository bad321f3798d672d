package relayer

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedDomainEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Worker procesa eventos pendientes de la tabla outbox de forma genérica.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventBus
	eventRegistry map[string]sharedDomainEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventBus,
	registry map[string]sharedDomainEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start bloquea haciendo polling cada interval hasta que ctx se cancela.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido.")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

func (w *Worker) ProcessBatch(ctx context.Context) {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return
	}
	if len(events) > 0 {
		w.log.Debug("📬 Eventos pendientes", zap.Int("count", len(events)))
	}

	for _, evt := range events {
		w.publishAndMark(ctx, evt)
	}
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) {
	// 1. El registro indica el tipo del payload y el topic de destino.
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		w.log.Error("Tipo de evento desconocido en registro", zap.String("event_type", evt.EventType))
		return
	}

	// Validamos el payload decodificándolo al tipo registrado.
	typed := reflect.New(metadata.Type).Interface()
	payloadBytes, _ := json.Marshal(evt.Payload)
	if err := json.Unmarshal(payloadBytes, typed); err != nil {
		w.log.Error("Error al decodificar payload del evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return
	}
	data, err := json.Marshal(typed)
	if err != nil {
		w.log.Error("Error al serializar payload del evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return
	}

	integration := sharedDomainEvents.IntegrationEvent{
		Type:      evt.EventType,
		Key:       evt.AggregateID,
		Timestamp: evt.CreatedAt,
		Data:      data,
	}

	// 2. Publicar
	if err := w.publisher.Publish(ctx, metadata.Topic, integration); err != nil {
		w.log.Warn("⚠️ No se pudo publicar evento",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return // No lo marcamos como procesado para que se reintente
	}

	// 3. Marcar como procesado
	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		w.log.Warn("⚠️ No se pudo marcar evento como procesado",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return
	}
	w.log.Debug("✅ Evento publicado y marcado", zap.String("event_id", evt.ID.String()), zap.String("topic", metadata.Topic))
}
