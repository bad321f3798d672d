package mongodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
)

// mongoOutboxEvent guarda el payload como JSON para que el relayer lo lea
// igual que desde SQL.
type mongoOutboxEvent struct {
	ID            string    `bson:"_id"`
	AggregateType string    `bson:"aggregateType"`
	AggregateID   string    `bson:"aggregateId"`
	EventType     string    `bson:"eventType"`
	Payload       string    `bson:"payload"`
	CreatedAt     time.Time `bson:"createdAt"`
	Processed     bool      `bson:"processed"`
}

// InsertOutbox inserta el evento; dentro de una transacción si ctx es un SessionContext.
func InsertOutbox(ctx context.Context, db *mongo.Database, evt sharedDomain.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	_, err = db.Collection("outbox").InsertOne(ctx, mongoOutboxEvent{
		ID:            evt.ID.String(),
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.EventType,
		Payload:       string(payload),
		CreatedAt:     evt.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// OutboxRepoMongoDB implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepoMongoDB struct {
	outboxColl *mongo.Collection
}

func NewOutboxRepoMongoDB(db *mongo.Database) *OutboxRepoMongoDB {
	return &OutboxRepoMongoDB{outboxColl: db.Collection("outbox")}
}

// FetchPendingOutbox obtiene los eventos no procesados de la colección outbox.
func (r *OutboxRepoMongoDB) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))

	cursor, err := r.outboxColl.Find(ctx, bson.M{"processed": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []sharedDomain.OutboxEvent
	for cursor.Next(ctx) {
		var mo mongoOutboxEvent
		if err := cursor.Decode(&mo); err != nil {
			return nil, err
		}
		evt, err := fromMongoOutboxEvent(&mo)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, cursor.Err()
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepoMongoDB) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.outboxColl.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"processed": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

func fromMongoOutboxEvent(mo *mongoOutboxEvent) (sharedDomain.OutboxEvent, error) {
	id, err := uuid.Parse(mo.ID)
	if err != nil {
		return sharedDomain.OutboxEvent{}, fmt.Errorf("invalid UUID in outbox document: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(mo.Payload), &payload); err != nil {
		return sharedDomain.OutboxEvent{}, fmt.Errorf("invalid JSON payload in outbox document %s: %w", mo.ID, err)
	}
	return sharedDomain.OutboxEvent{
		ID:            id,
		AggregateType: mo.AggregateType,
		AggregateID:   mo.AggregateID,
		EventType:     mo.EventType,
		Payload:       payload,
		CreatedAt:     mo.CreatedAt,
		Processed:     mo.Processed,
	}, nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepoMongoDB)(nil)
