package sqlq

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
)

// Execer lo cumplen *sql.DB y *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// InsertOutbox guarda el evento dentro de la transacción del cambio que lo origina.
func InsertOutbox(ctx context.Context, tx Execer, d Dialect, evt sharedDomain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	_, err = tx.ExecContext(ctx, d.Rebind(
		`INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at, processed)
		 VALUES (?, ?, ?, ?, ?, ?, FALSE)`),
		evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, string(payloadBytes), evt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// OutboxRepo implementa sharedDomain.OutboxRepository para SQLite y Postgres.
type OutboxRepo struct {
	db *sql.DB
	d  Dialect
}

func NewOutboxRepo(db *sql.DB, d Dialect) *OutboxRepo {
	return &OutboxRepo{db: db, d: d}
}

func (r *OutboxRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(
		`SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		 FROM outbox
		 WHERE processed = FALSE
		 ORDER BY created_at
		 LIMIT ?`), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedDomain.OutboxEvent
	for rows.Next() {
		var evt sharedDomain.OutboxEvent
		var idStr string
		var payloadBytes []byte

		if err := rows.Scan(&idStr, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &payloadBytes, &evt.CreatedAt); err != nil {
			return nil, err
		}

		evt.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in outbox row: %w", err)
		}

		var payload map[string]interface{}
		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", evt.ID, err)
		}
		evt.Payload = payload

		events = append(events, evt)
	}

	return events, rows.Err()
}

func (r *OutboxRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`UPDATE outbox SET processed = TRUE WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s as processed: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected for outbox event %s: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("no outbox event found with id %s", id)
	}
	return nil
}

var _ sharedDomain.OutboxRepository = (*OutboxRepo)(nil)
