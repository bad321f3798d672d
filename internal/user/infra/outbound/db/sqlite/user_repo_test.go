package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/internal/user/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, InitSQLite(db))
	return db
}

func newUser(username, role string) *domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.User{Names: "Nombre " + username, Username: username, Role: role, PasswordHash: "hash-" + username, CreatedAt: now, UpdatedAt: now}
}

func evt(t string) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(domain.CacheAggregate, "", t, nil)
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewUserRepoSQLite(newTestDB(t))
	ctx := context.Background()

	u := newUser("ana", domain.RoleAdmin)
	require.NoError(t, repo.Create(ctx, u, evt(domain.UserCreated)))
	assert.NotZero(t, u.ID)

	got, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "hash-ana", got.PasswordHash)

	assert.ErrorIs(t, repo.Create(ctx, newUser("ana", domain.RoleTrainer), evt(domain.UserCreated)), domain.ErrUserAlreadyExists)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepo_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	repo := NewUserRepoSQLite(newTestDB(t))
	ctx := context.Background()

	u := newUser("leo", domain.RoleTrainer)
	require.NoError(t, repo.Create(ctx, u, evt(domain.UserCreated)))

	u.Role = domain.RoleReceptionist
	u.PasswordHash = ""
	require.NoError(t, repo.Update(ctx, u, evt(domain.UserUpdated)))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReceptionist, got.Role)
	assert.Equal(t, "hash-leo", got.PasswordHash)

	u.PasswordHash = "new-hash"
	require.NoError(t, repo.Update(ctx, u, evt(domain.UserUpdated)))
	got, _ = repo.GetByID(ctx, u.ID)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepo_ListByRoleAndDelete(t *testing.T) {
	repo := NewUserRepoSQLite(newTestDB(t))
	ctx := context.Background()

	for _, u := range []*domain.User{newUser("a", domain.RoleTrainer), newUser("b", domain.RoleTrainer), newUser("c", domain.RoleAdmin)} {
		require.NoError(t, repo.Create(ctx, u, evt(domain.UserCreated)))
	}
	require.NoError(t, repo.DeleteByID(ctx, 1, time.Now().UTC(), evt(domain.UserDeleted)))

	page, err := repo.List(ctx,
		sharedDomain.And(sharedDomain.StatusCriteria{}, sharedDomain.EqualCriteria{Field: "role", Value: domain.RoleTrainer}),
		sharedQuery.Sort{Field: "username"}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalRecords)
	assert.Equal(t, "b", page.Items[0].Username)

	_, err = repo.GetByUsername(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
