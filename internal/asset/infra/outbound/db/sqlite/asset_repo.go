package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/davicafu/gymlab/internal/asset/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const assetColumns = `id, name, code, location, condition, purchase_date, value, notes,
	created_by, created_at, updated_at, deleted_at`

type AssetRepoSQLite struct {
	db *sql.DB
}

func NewAssetRepoSQLite(db *sql.DB) *AssetRepoSQLite {
	return &AssetRepoSQLite{db: db}
}

func (r *AssetRepoSQLite) Create(ctx context.Context, a *domain.Asset, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO assets (name, code, location, condition, purchase_date, value, notes,
				created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?) RETURNING id`,
			a.Name, a.Code, a.Location, a.Condition, a.PurchaseDate, a.Value, a.Notes,
			a.CreatedBy, a.CreatedAt, a.UpdatedAt,
		).Scan(&a.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAssetAlreadyExists
			}
			return err
		}
		evt.AggregateID = a.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *AssetRepoSQLite) Update(ctx context.Context, a *domain.Asset, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE assets SET name=?, code=?, location=?, condition=?, purchase_date=?, value=?, notes=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			a.Name, a.Code, a.Location, a.Condition, a.PurchaseDate, a.Value, a.Notes, a.UpdatedAt, a.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAssetAlreadyExists
			}
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrAssetNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *AssetRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "assets", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAssetNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *AssetRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Asset], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    assetColumns,
		From:       "assets",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Asset, error) {
		return scanAsset(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(s scanner) (domain.Asset, error) {
	var a domain.Asset
	var deletedAt sql.NullTime
	err := s.Scan(&a.ID, &a.Name, &a.Code, &a.Location, &a.Condition, &a.PurchaseDate, &a.Value, &a.Notes,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &deletedAt)
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return a, err
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ domain.AssetRepository = (*AssetRepoSQLite)(nil)

// InitSQLite crea la tabla assets. El código solo es único entre activos.
func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS assets (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            code TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            condition TEXT NOT NULL,
            purchase_date DATETIME NOT NULL,
            value REAL NOT NULL DEFAULT 0,
            notes TEXT NOT NULL DEFAULT '',
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_assets_code ON assets (code) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_assets_deleted ON assets (deleted_at)`,
	)
}
