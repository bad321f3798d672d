package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/davicafu/gymlab/internal/exercise/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const exerciseColumns = `id, name, muscle_group, equipment, difficulty, video_url, instructions,
	created_by, created_at, updated_at, deleted_at`

type ExerciseRepoSQLite struct {
	db *sql.DB
}

func NewExerciseRepoSQLite(db *sql.DB) *ExerciseRepoSQLite {
	return &ExerciseRepoSQLite{db: db}
}

func (r *ExerciseRepoSQLite) Create(ctx context.Context, e *domain.Exercise, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO exercises (name, muscle_group, equipment, difficulty, video_url, instructions,
				created_by, created_at, updated_at)
			 VALUES (?,?,?,?,?,?,?,?,?) RETURNING id`,
			e.Name, e.MuscleGroup, e.Equipment, e.Difficulty, e.VideoURL, e.Instructions,
			e.CreatedBy, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID)
		if err != nil {
			return err
		}
		evt.AggregateID = e.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ExerciseRepoSQLite) Update(ctx context.Context, e *domain.Exercise, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE exercises SET name=?, muscle_group=?, equipment=?, difficulty=?, video_url=?, instructions=?, updated_at=?
			 WHERE id=? AND deleted_at IS NULL`,
			e.Name, e.MuscleGroup, e.Equipment, e.Difficulty, e.VideoURL, e.Instructions, e.UpdatedAt, e.ID,
		)
		if err != nil {
			return err
		}
		if ok, err := sqlq.Affected(res); err != nil {
			return err
		} else if !ok {
			return domain.ErrExerciseNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ExerciseRepoSQLite) DeleteByID(ctx context.Context, id int64, at time.Time, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := sqlq.SoftDelete(ctx, tx, sqlq.SQLite, "exercises", id, at)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrExerciseNotFound
		}
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *ExerciseRepoSQLite) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	e, err := scanExercise(r.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExerciseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Exercise], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    exerciseColumns,
		From:       "exercises",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Exercise, error) {
		return scanExercise(rows)
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExercise(s scanner) (domain.Exercise, error) {
	var e domain.Exercise
	var deletedAt sql.NullTime
	err := s.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment, &e.Difficulty, &e.VideoURL, &e.Instructions,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &deletedAt)
	if deletedAt.Valid {
		e.DeletedAt = &deletedAt.Time
	}
	return e, err
}

var _ domain.ExerciseRepository = (*ExerciseRepoSQLite)(nil)

func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS exercises (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            muscle_group TEXT NOT NULL,
            equipment TEXT NOT NULL DEFAULT '',
            difficulty INTEGER NOT NULL DEFAULT 0,
            video_url TEXT NOT NULL DEFAULT '',
            instructions TEXT NOT NULL DEFAULT '',
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE INDEX IF NOT EXISTS idx_exercises_deleted ON exercises (deleted_at)`,
	)
}
