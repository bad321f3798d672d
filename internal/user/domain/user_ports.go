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
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidUser        = errors.New("invalid user")
	ErrWeakPassword       = errors.New("password must have at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	// Create asigna u.ID. Devuelve ErrUserAlreadyExists si el username ya existe.
	Create(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error

	// Devuelve ErrUserNotFound si no existe o está borrado.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername incluye el hash de la contraseña. Solo usuarios activos.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Si u.PasswordHash está vacío la contraseña no cambia.
	Update(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error

	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error

	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[User], error)
}

// TokenIssuer firma y valida tokens de sesión.
type TokenIssuer interface {
	Issue(u *User) (string, Claims, error)
	// Parse devuelve ErrInvalidToken si la firma o la caducidad no son válidas.
	Parse(token string) (Claims, error)
}

// ---------- Helpers ----------

const CacheAggregate = "user"

// RevokedKey es la key de caché que marca un token como cerrado.
func RevokedKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}
