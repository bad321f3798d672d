package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const templateColumns = `id, name, channel, subject, body, created_by, created_at, updated_at, deleted_at`

type TemplateRepoSQLite struct {
	db *sql.DB
}

func NewTemplateRepoSQLite(db *sql.DB) *TemplateRepoSQLite {
	return &TemplateRepoSQLite{db: db}
}

func (r *TemplateRepoSQLite) Create(ctx context.Context, t *domain.Template, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO templates (name, channel, subject, body, created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?) RETURNING id`,
			t.Name, t.Channel, t.Subject, t.Body, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
		).Scan(&t.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrTemplateAlreadyExists
			}
			return err
		}
		evt.AggregateID = t.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *TemplateRepoSQLite) Update(ctx context.Context, t *domain.Template, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE templates SET name=?, channel=?, subject=?, body=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			t.Name, t.Channel, t.Subject, t.Body, t.UpdatedAt, t.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrTemplateAlreadyExists
			}
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrTemplateNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *TemplateRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "templates", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTemplateNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *TemplateRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *TemplateRepoSQLite) GetByName(ctx context.Context, name string) (*domain.Template, error) {
	return r.getOne(ctx, `name = ?`, strings.ToLower(name))
}

func (r *TemplateRepoSQLite) getOne(ctx context.Context, where string, arg interface{}) (*domain.Template, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE `+where+` AND deleted_at IS NULL`, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Template], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    templateColumns,
		From:       "templates",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Template, error) {
		return scanTemplate(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(s scanner) (domain.Template, error) {
	var t domain.Template
	var deletedAt sql.NullTime
	err := s.Scan(&t.ID, &t.Name, &t.Channel, &t.Subject, &t.Body, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt, &deletedAt)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.Time
	}
	return t, err
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ domain.TemplateRepository = (*TemplateRepoSQLite)(nil)
