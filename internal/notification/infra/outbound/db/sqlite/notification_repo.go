package sqlite

import (
	"context"
	"database/sql"

	"github.com/davicafu/gymlab/internal/notification/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
)

const notificationColumns = `id, template_id, client_id, channel, recipient, subject, status, provider_id, error,
	created_by, created_at`

type NotificationRepoSQLite struct {
	db *sql.DB
}

func NewNotificationRepoSQLite(db *sql.DB) *NotificationRepoSQLite {
	return &NotificationRepoSQLite{db: db}
}

func (r *NotificationRepoSQLite) Record(ctx context.Context, n *domain.Notification, evt sharedDomain.OutboxEvent) error {
	return sqlq.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO notifications (template_id, client_id, channel, recipient, subject, status, provider_id, error,
				created_by, created_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?) RETURNING id`,
			n.TemplateID, n.ClientID, n.Channel, n.Recipient, n.Subject, n.Status, n.ProviderID, n.Error,
			n.CreatedBy, n.CreatedAt,
		).Scan(&n.ID)
		if err != nil {
			return err
		}
		evt.AggregateID = n.PartitionKey()
		return sqlq.InsertOutbox(ctx, tx, sqlq.SQLite, evt)
	})
}

func (r *NotificationRepoSQLite) List(ctx context.Context, criteria sharedDomain.Criteria, sort sharedQuery.Sort, pagination sharedQuery.OffsetPagination) (sharedQuery.Page[domain.Notification], error) {
	return sqlq.QueryPage(ctx, r.db, sqlq.SQLite, sqlq.ListStatement{
		Columns:    notificationColumns,
		From:       "notifications",
		Criteria:   criteria,
		Sort:       sort,
		Pagination: pagination,
	}, func(rows *sql.Rows) (domain.Notification, error) {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.TemplateID, &n.ClientID, &n.Channel, &n.Recipient, &n.Subject, &n.Status,
			&n.ProviderID, &n.Error, &n.CreatedBy, &n.CreatedAt)
		return n, err
	})
}

var _ domain.NotificationRepository = (*NotificationRepoSQLite)(nil)

// InitSQLite crea las tablas templates y notifications.
func InitSQLite(db *sql.DB) error {
	return sharedSQLite.Exec(db, `
        CREATE TABLE IF NOT EXISTS templates (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            channel TEXT NOT NULL,
            subject TEXT NOT NULL DEFAULT '',
            body TEXT NOT NULL,
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            deleted_at DATETIME
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_name ON templates (name) WHERE deleted_at IS NULL`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            template_id INTEGER NOT NULL,
            client_id INTEGER NOT NULL,
            channel TEXT NOT NULL,
            recipient TEXT NOT NULL DEFAULT '',
            subject TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            provider_id TEXT NOT NULL DEFAULT '',
            error TEXT NOT NULL DEFAULT '',
            created_by INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_client ON notifications (client_id)`,
	)
}
