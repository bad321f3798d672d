package sqlrepo

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/davicafu/gymlab/internal/ledger/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

// Migrations contiene el esquema de Postgres (golang-migrate).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const entryColumns = `id, date, amount, description, reference, category, payment_method, client_id,
	created_by, created_at, updated_at, deleted_at`

// EntryRepo implementa domain.EntryRepository sobre SQLite o Postgres.
type EntryRepo struct {
	db *sql.DB
	d  sqlq.Dialect
}

func NewEntryRepo(db *sql.DB, d sqlq.Dialect) *EntryRepo {
	return &EntryRepo{db: db, d: d}
}

func (r *EntryRepo) Create(ctx context.Context, e *domain.Entry, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`INSERT INTO %s (date, amount, description, reference, category, payment_method, client_id,
				created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?) RETURNING id`, e.Kind.Table())
		err := tx.QueryRowContext(ctx, r.d.Rebind(query),
			e.Date.UTC(), e.Amount, e.Description, e.Reference, e.Category, e.PaymentMethod, e.ClientID,
			e.CreatedBy, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID)
		if err != nil {
			return err
		}

		evt.AggregateID = e.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, r.d, evt)
	})
}

func (r *EntryRepo) Update(ctx context.Context, e *domain.Entry, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`UPDATE %s SET date=?, amount=?, description=?, reference=?, category=?,
				payment_method=?, client_id=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`, e.Kind.Table())
		res, err := tx.ExecContext(ctx, r.d.Rebind(query),
			e.Date.UTC(), e.Amount, e.Description, e.Reference, e.Category, e.PaymentMethod, e.ClientID,
			e.UpdatedAt, e.ID,
		)
		if err != nil {
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrEntryNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, r.d, evt)
	})
}

func (r *EntryRepo) DeleteByID(ctx context.Context, kind domain.Kind, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, r.d, kind.Table(), id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrEntryNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, r.d, evt)
	})
}

func (r *EntryRepo) GetByID(ctx context.Context, kind domain.Kind, id int64) (*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND deleted_at IS NULL`, entryColumns, kind.Table())
	e, err := scanEntry(r.db.QueryRowContext(ctx, r.d.Rebind(query), id), kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) List(ctx context.Context, kind domain.Kind, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Entry], error) {
	return sqlq.QueryPage(ctx, r.db, r.d, sqlq.ListStatement{
		Columns:    entryColumns,
		From:       kind.Table(),
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Entry, error) {
		return scanEntry(rows, kind)
	})
}

func (r *EntryRepo) MonthlyTotals(ctx context.Context, kind domain.Kind, from, to time.Time) ([]domain.MonthlyTotal, error) {
	month := r.d.MonthExpr("date")
	query := fmt.Sprintf(`SELECT %s AS month, SUM(amount) FROM %s
		WHERE deleted_at IS NULL AND date >= ? AND date <= ?
		GROUP BY %s ORDER BY month`, month, kind.Table(), month)

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(query), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.MonthlyTotal
	for rows.Next() {
		var t domain.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner, kind domain.Kind) (domain.Entry, error) {
	e := domain.Entry{Kind: kind}
	var deletedAt sql.NullTime
	err := s.Scan(&e.ID, &e.Date, &e.Amount, &e.Description, &e.Reference, &e.Category, &e.PaymentMethod, &e.ClientID,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &deletedAt)
	if err != nil {
		return e, err
	}
	if deletedAt.Valid {
		e.DeletedAt = &deletedAt.Time
	}
	return e, nil
}

var _ domain.EntryRepository = (*EntryRepo)(nil)

// ------------------ Inicialización de DB ------------------

// InitSQLite crea las tablas del libro en SQLite. En Postgres se usan las migraciones.
func InitSQLite(db *sql.DB) error {
	var stmts []string
	for _, kind := range []domain.Kind{domain.KindIncome, domain.KindExpense} {
		stmts = append(stmts,
			fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            date DATETIME NOT NULL,
            amount REAL NOT NULL CHECK (amount > 0),
            description TEXT NOT NULL,
            reference TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            payment_method INTEGER NOT NULL,
            client_id INTEGER NOT NULL DEFAULT 0,
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`, kind.Table()),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_date ON %s (date)`, kind.Table(), kind.Table()),
		)
	}
	return sharedSQLite.Exec(db, stmts...)
}
