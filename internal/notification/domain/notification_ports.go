package domain

import (
	"context"
	"errors"
	"time"

	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateAlreadyExists = errors.New("template name already exists")
	ErrInvalidTemplate       = errors.New("invalid template")
	ErrNoRecipient           = errors.New("client has no address for this channel")
)

// ---------- Interfaces (Ports) ----------

type TemplateRepository interface {
	Create(ctx context.Context, t *Template, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Template, error)
	GetByName(ctx context.Context, name string) (*Template, error)
	Update(ctx context.Context, t *Template, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Template], error)
}

// NotificationRepository guarda el histórico de envíos junto a su evento.
type NotificationRepository interface {
	Record(ctx context.Context, n *Notification, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Notification], error)
}

// ClientReader es lo único que se necesita del agregado client.
type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*clientDomain.Client, error)
}

// Renderer convierte el cuerpo markdown en HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Sender entrega un mensaje y devuelve el id del proveedor.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

const (
	CacheAggregate        = "template"
	NotificationAggregate = "notification"
)
