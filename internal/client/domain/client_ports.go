package domain

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrClientAlreadyExists = errors.New("client already exists")
	ErrInvalidClient       = errors.New("invalid client")
)

// ---------- Interfaces (Ports) ----------

// ClientRepository define las operaciones persistentes para Client.
// Cada cambio guarda su evento de outbox en la misma transacción.
type ClientRepository interface {
	// Create asigna c.ID. Devuelve ErrClientAlreadyExists si el idNumber ya existe.
	Create(ctx context.Context, c *Client, evt sharedDomain.OutboxEvent) error

	// Devuelve ErrClientNotFound si no existe o está borrado.
	GetByID(ctx context.Context, id int64) (*Client, error)

	// Devuelve ErrClientNotFound si no existe o está borrado.
	Update(ctx context.Context, c *Client, evt sharedDomain.OutboxEvent) error

	// Borrado lógico. Devuelve ErrClientNotFound si no existe o ya estaba borrado.
	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error

	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Client], error)
}

// ---------- Helpers ----------

const CacheAggregate = "client"
