package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/davicafu/gymlab/internal/client/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const clientColumns = `id, names, last_names, id_number, email, phone, gender, birth_date,
	membership_ends_at, created_by, created_at, updated_at, deleted_at`

type ClientRepoSQLite struct {
	db *sql.DB
}

func NewClientRepoSQLite(db *sql.DB) *ClientRepoSQLite {
	return &ClientRepoSQLite{db: db}
}

// ------------------ Métodos ------------------

func (r *ClientRepoSQLite) Create(ctx context.Context, c *domain.Client, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO clients (names, last_names, id_number, email, phone, gender, birth_date,
				membership_ends_at, created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?) RETURNING id`,
			c.Names, c.LastNames, c.IDNumber, c.Email, c.Phone, c.Gender, c.BirthDate.UTC(),
			c.MembershipEndsAt, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
		).Scan(&c.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrClientAlreadyExists
			}
			return err
		}

		evt.AggregateID = c.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ClientRepoSQLite) Update(ctx context.Context, c *domain.Client, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE clients SET names=?, last_names=?, id_number=?, email=?, phone=?, gender=?, birth_date=?,
				membership_ends_at=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			c.Names, c.LastNames, c.IDNumber, c.Email, c.Phone, c.Gender, c.BirthDate.UTC(),
			c.MembershipEndsAt, c.UpdatedAt, c.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrClientAlreadyExists
			}
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrClientNotFound
		}

		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ClientRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "clients", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrClientNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ClientRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ? AND deleted_at IS NULL`, id)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Client], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    clientColumns,
		From:       "clients",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Client, error) {
		return scanClient(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(s scanner) (domain.Client, error) {
	var c domain.Client
	var endsAt, deletedAt sql.NullTime
	err := s.Scan(&c.ID, &c.Names, &c.LastNames, &c.IDNumber, &c.Email, &c.Phone, &c.Gender, &c.BirthDate,
		&endsAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &deletedAt)
	if err != nil {
		return c, err
	}
	if endsAt.Valid {
		c.MembershipEndsAt = &endsAt.Time
	}
	if deletedAt.Valid {
		c.DeletedAt = &deletedAt.Time
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ domain.ClientRepository = (*ClientRepoSQLite)(nil)

// ------------------ Inicialización de DB ------------------

// InitSQLite crea la tabla clients si no existe.
func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS clients (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            names TEXT NOT NULL,
            last_names TEXT NOT NULL,
            id_number TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            gender TEXT NOT NULL,
            birth_date DATETIME NOT NULL,
            membership_ends_at DATETIME,
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE INDEX IF NOT EXISTS idx_clients_deleted ON clients (deleted_at)`,
	)
}
