package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/internal/user/domain"
)

const userColumns = `id, names, username, email, role, password_hash, created_by, created_at, updated_at, deleted_at`

type UserRepoSQLite struct {
	db *sql.DB
}

func NewUserRepoSQLite(db *sql.DB) *UserRepoSQLite {
	return &UserRepoSQLite{db: db}
}

// ------------------ Métodos ------------------

func (r *UserRepoSQLite) Create(ctx context.Context, u *domain.User, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (names, username, email, role, password_hash, created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?) RETURNING id`,
			u.Names, u.Username, u.Email, u.Role, u.PasswordHash, u.CreatedBy, u.CreatedAt, u.UpdatedAt,
		).Scan(&u.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserAlreadyExists
			}
			return err
		}

		evt.AggregateID = u.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *UserRepoSQLite) Update(ctx context.Context, u *domain.User, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET names=?, username=?, email=?, role=?,
				password_hash=CASE WHEN ? = '' THEN password_hash ELSE ? END, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			u.Names, u.Username, u.Email, u.Role, u.PasswordHash, u.PasswordHash, u.UpdatedAt, u.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserAlreadyExists
			}
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrUserNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *UserRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "users", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *UserRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? AND deleted_at IS NULL`, id)
}

func (r *UserRepoSQLite) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? AND deleted_at IS NULL`, username)
}

func (r *UserRepoSQLite) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.User], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    userColumns,
		From:       "users",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.User, error) {
		return scanUser(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var deletedAt sql.NullTime
	err := s.Scan(&u.ID, &u.Names, &u.Username, &u.Email, &u.Role, &u.PasswordHash,
		&u.CreatedBy, &u.CreatedAt, &u.UpdatedAt, &deletedAt)
	if err != nil {
		return u, err
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ domain.UserRepository = (*UserRepoSQLite)(nil)

// ------------------ Inicialización de DB ------------------

func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            names TEXT NOT NULL,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE INDEX IF NOT EXISTS idx_users_deleted ON users (deleted_at)`,
	)
}
