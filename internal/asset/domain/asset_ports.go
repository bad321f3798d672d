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
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetAlreadyExists = errors.New("asset code already exists")
	ErrInvalidAsset       = errors.New("invalid asset")
)

// ---------- Interfaces (Ports) ----------
type AssetRepository interface {
	Create(ctx context.Context, a *Asset, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Asset, error)
	Update(ctx context.Context, a *Asset, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error
	List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[Asset], error)
}

const CacheAggregate = "asset"
