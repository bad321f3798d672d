package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/gymlab/internal/exercise/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

func newRepo(t *testing.T) *ExerciseRepoSQLite {
	t.Helper()
	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, InitSQLite(db))
	return NewExerciseRepoSQLite(db)
}

func TestExerciseRepo_Filters(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seed := []domain.Exercise{
		{Name: "Sentadilla", MuscleGroup: "piernas", Equipment: "barra", Difficulty: 1, VideoURL: "https://youtu.be/a"},
		{Name: "Zancada", MuscleGroup: "piernas", Equipment: "mancuernas", Difficulty: 0},
		{Name: "Press banca", MuscleGroup: "pecho", Equipment: "barra", Difficulty: 2, VideoURL: "https://vimeo.com/1"},
	}
	for i := range seed {
		seed[i].CreatedAt, seed[i].UpdatedAt = now, now
		require.NoError(t, repo.Create(ctx, &seed[i], sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.ExerciseCreated, seed[i])))
	}

	page, err := repo.List(ctx, sharedDomain.And(
		sharedDomain.StatusCriteria{},
		sharedDomain.EqualCriteria{Field: "muscle_group", Value: "piernas"},
		domain.HasVideoCriteria{HasVideo: true},
	), sharedQuery.Sort{Field: "name"}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalRecords)
	assert.Equal(t, "Sentadilla", page.Items[0].Name)

	page, err = repo.List(ctx, sharedDomain.And(
		sharedDomain.SearchCriteria{Fields: domain.SearchColumns[domain.SearchByEquipment], Term: "BARRA"},
		sharedDomain.EqualCriteria{Field: "difficulty", Value: 2},
	), sharedQuery.Sort{}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalRecords)
	assert.Equal(t, "Press banca", page.Items[0].Name)
}

func TestExerciseRepo_UpdateDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	e := &domain.Exercise{Name: "Remo", MuscleGroup: "espalda", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, e, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", domain.ExerciseCreated, e)))

	e.Equipment = "polea"
	require.NoError(t, repo.Update(ctx, e, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "1", domain.ExerciseUpdated, e)))
	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "polea", got.Equipment)

	require.NoError(t, repo.DeleteByID(ctx, e.ID, now, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "1", domain.ExerciseDeleted, nil)))
	assert.ErrorIs(t, repo.DeleteByID(ctx, e.ID, now, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "1", domain.ExerciseDeleted, nil)), domain.ErrExerciseNotFound)
	assert.ErrorIs(t, repo.Update(ctx, e, sharedDomain.NewOutboxEvent(domain.CacheAggregate, "1", domain.ExerciseUpdated, e)), domain.ErrExerciseNotFound)
}
