package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/gymlab/internal/client/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
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

func newClient(names, idNumber, gender string) *domain.Client {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Client{
		Names:     names,
		LastNames: "Test",
		IDNumber:  idNumber,
		Gender:    gender,
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seed(t *testing.T, repo *ClientRepoSQLite, clients ...*domain.Client) {
	t.Helper()
	for _, c := range clients {
		require.NoError(t, repo.Create(context.Background(), c, sharedDomain.NewOutboxEvent("client", "", domain.ClientCreated, c)))
	}
}

func TestClientRepo_CreateGetAndOutbox(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepoSQLite(db)
	ctx := context.Background()

	c := newClient("Ana", "0101", domain.GenderFemale)
	c.MembershipEndsAt = sharedUtils.Ptr(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	seed(t, repo, c)
	assert.NotZero(t, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Names)
	require.NotNil(t, got.MembershipEndsAt)
	assert.Equal(t, 2030, got.MembershipEndsAt.Year())

	pending, err := sqlq.NewOutboxRepo(db, sqlq.SQLite).FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, c.PartitionKey(), pending[0].AggregateID)
	assert.Equal(t, domain.ClientCreated, pending[0].EventType)
}

func TestClientRepo_DuplicateIDNumber(t *testing.T) {
	repo := NewClientRepoSQLite(newTestDB(t))
	seed(t, repo, newClient("Ana", "0101", domain.GenderFemale))

	dup := newClient("Otra", "0101", domain.GenderFemale)
	err := repo.Create(context.Background(), dup, sharedDomain.NewOutboxEvent("client", "", domain.ClientCreated, dup))
	assert.ErrorIs(t, err, domain.ErrClientAlreadyExists)
}

func TestClientRepo_SoftDeleteAndStatusFilter(t *testing.T) {
	repo := NewClientRepoSQLite(newTestDB(t))
	ctx := context.Background()

	a := newClient("Ana", "1", domain.GenderFemale)
	b := newClient("Luis", "2", domain.GenderMale)
	seed(t, repo, a, b)

	require.NoError(t, repo.DeleteByID(ctx, b.ID, time.Now().UTC(), sharedDomain.NewOutboxEvent("client", "2", domain.ClientDeleted, nil)))
	assert.ErrorIs(t, repo.DeleteByID(ctx, b.ID, time.Now().UTC(), sharedDomain.OutboxEvent{}), domain.ErrClientNotFound)

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	page := sharedQuery.OffsetPagination{Limit: 10}
	active, err := repo.List(ctx, sharedDomain.StatusCriteria{}, sharedQuery.Sort{Field: "id"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, active.TotalRecords)
	assert.Equal(t, "Ana", active.Items[0].Names)

	inactive, err := repo.List(ctx, sharedDomain.StatusCriteria{Status: sharedDomain.StatusInactive}, sharedQuery.Sort{Field: "id"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, inactive.TotalRecords)
	assert.NotNil(t, inactive.Items[0].DeletedAt)

	all, err := repo.List(ctx, sharedDomain.StatusCriteria{Status: sharedDomain.StatusAll}, sharedQuery.Sort{Field: "id"}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalRecords)
}

func TestClientRepo_ListPaginationSearchAndSort(t *testing.T) {
	repo := NewClientRepoSQLite(newTestDB(t))
	ctx := context.Background()

	seed(t, repo,
		newClient("Ana", "1", domain.GenderFemale),
		newClient("Andrea", "2", domain.GenderFemale),
		newClient("Luis", "3", domain.GenderMale),
		newClient("Anibal", "4", domain.GenderMale),
	)

	criteria := sharedDomain.And(
		sharedDomain.StatusCriteria{},
		sharedDomain.SearchCriteria{Fields: domain.SearchColumns[domain.SearchByNames], Term: "an"},
	)
	page, err := repo.List(ctx, criteria, sharedQuery.Sort{Field: "names", Desc: true}, sharedQuery.OffsetPagination{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalRecords)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Anibal", page.Items[0].Names)
	assert.Equal(t, "Andrea", page.Items[1].Names)

	// Página fuera de rango: sin filas pero con el total correcto.
	beyond, err := repo.List(ctx, criteria, sharedQuery.Sort{Field: "names"}, sharedQuery.OffsetPagination{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 3, beyond.TotalRecords)

	female, err := repo.List(ctx, sharedDomain.And(sharedDomain.EqualCriteria{Field: "gender", Value: "F"}), sharedQuery.Sort{}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, female.TotalRecords)
}

func TestClientRepo_MembershipFilter(t *testing.T) {
	repo := NewClientRepoSQLite(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	active := newClient("Ana", "1", domain.GenderFemale)
	active.MembershipEndsAt = sharedUtils.Ptr(now.AddDate(0, 1, 0))
	expired := newClient("Luis", "2", domain.GenderMale)
	expired.MembershipEndsAt = sharedUtils.Ptr(now.AddDate(0, -1, 0))
	never := newClient("Eva", "3", domain.GenderFemale)
	seed(t, repo, active, expired, never)

	page, err := repo.List(ctx, domain.MembershipActiveCriteria{Active: true, Now: now}, sharedQuery.Sort{}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalRecords)

	page, err = repo.List(ctx, domain.MembershipActiveCriteria{Active: false, Now: now}, sharedQuery.Sort{}, sharedQuery.OffsetPagination{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalRecords)
}

func TestClientRepo_Update(t *testing.T) {
	repo := NewClientRepoSQLite(newTestDB(t))
	ctx := context.Background()

	c := newClient("Ana", "1", domain.GenderFemale)
	seed(t, repo, c)

	c.Phone = "0999"
	require.NoError(t, repo.Update(ctx, c, sharedDomain.NewOutboxEvent("client", c.PartitionKey(), domain.ClientUpdated, c)))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "0999", got.Phone)

	missing := newClient("X", "9", domain.GenderOther)
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, missing, sharedDomain.OutboxEvent{}), domain.ErrClientNotFound)
}
