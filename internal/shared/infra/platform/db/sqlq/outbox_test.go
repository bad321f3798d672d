package sqlq

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", Postgres.Rebind(q))
}

func TestOutboxRepo_FetchPending_Postgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepo(db, Postgres)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at"}).
		AddRow(id.String(), "income", "7", "income.created", []byte(`{"id":7,"amount":30}`), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE processed = FALSE")).
		WithArgs(10).
		WillReturnRows(rows)

	events, err := repo.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, "income.created", events[0].EventType)
	assert.Equal(t, float64(30), events[0].Payload.(map[string]interface{})["amount"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkProcessed_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepo(db, Postgres)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox SET processed = TRUE WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkOutboxProcessed(context.Background(), id)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOutbox(t *testing.T) {
	db, mock := newMockDB(t)
	evt := sharedDomain.NewOutboxEvent("client", "3", "client.created", map[string]interface{}{"id": 3})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WithArgs(evt.ID.String(), "client", "3", "client.created", `{"id":3}`, evt.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, InsertOutbox(context.Background(), db, SQLite, evt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
