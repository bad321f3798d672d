package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/davicafu/gymlab/internal/measurement/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const (
	measurementColumns = `m.id, m.client_id, c.names || ' ' || c.last_names, c.id_number, m.date, m.weight, m.height,
	m.body_fat, m.waist, m.notes, m.created_by, m.created_at, m.updated_at, m.deleted_at`
	measurementFrom = `measurements m JOIN clients c ON c.id = m.client_id`
)

type MeasurementRepoSQLite struct {
	db *sql.DB
}

func NewMeasurementRepoSQLite(db *sql.DB) *MeasurementRepoSQLite {
	return &MeasurementRepoSQLite{db: db}
}

func (r *MeasurementRepoSQLite) Create(ctx context.Context, m *domain.Measurement, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO measurements (client_id, date, weight, height, body_fat, waist, notes, created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?) RETURNING id`,
			m.ClientID, m.Date.UTC(), m.Weight, m.Height, m.BodyFat, m.Waist, m.Notes, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
		).Scan(&m.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownClient
			}
			return err
		}
		evt.AggregateID = m.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *MeasurementRepoSQLite) Update(ctx context.Context, m *domain.Measurement, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE measurements SET client_id=?, date=?, weight=?, height=?, body_fat=?, waist=?, notes=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			m.ClientID, m.Date.UTC(), m.Weight, m.Height, m.BodyFat, m.Waist, m.Notes, m.UpdatedAt, m.ID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownClient
			}
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrMeasurementNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *MeasurementRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "measurements", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMeasurementNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *MeasurementRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.Measurement, error) {
	m, err := scanMeasurement(r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+` FROM `+measurementFrom+` WHERE m.id = ? AND m.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMeasurementNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Measurement], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    measurementColumns,
		From:       measurementFrom,
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Measurement, error) {
		return scanMeasurement(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMeasurement(s scanner) (domain.Measurement, error) {
	var m domain.Measurement
	var deletedAt sql.NullTime
	err := s.Scan(&m.ID, &m.ClientID, &m.ClientName, &m.ClientIDNumber, &m.Date, &m.Weight, &m.Height,
		&m.BodyFat, &m.Waist, &m.Notes, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt, &deletedAt)
	if deletedAt.Valid {
		m.DeletedAt = &deletedAt.Time
	}
	return m, err
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var _ domain.MeasurementRepository = (*MeasurementRepoSQLite)(nil)

// InitSQLite crea la tabla measurements. La tabla clients debe existir.
func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS measurements (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            client_id INTEGER NOT NULL REFERENCES clients(id),
            date DATETIME NOT NULL,
            weight REAL NOT NULL,
            height REAL NOT NULL DEFAULT 0,
            body_fat REAL NOT NULL DEFAULT 0,
            waist REAL NOT NULL DEFAULT 0,
            notes TEXT NOT NULL DEFAULT '',
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_client ON measurements (client_id, date)`,
	)
}
