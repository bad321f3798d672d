package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/davicafu/gymlab/internal/ledger/domain"
)

// LedgerAnalyticsRepo guarda cada evento del libro en ClickHouse y calcula el balance.
// Es append-only: una baja se registra como un evento más y el balance
// se queda con la última versión de cada movimiento.
type LedgerAnalyticsRepo struct {
	db *sql.DB
}

// NewLedgerAnalyticsRepo abre la conexión y comprueba que responde.
func NewLedgerAnalyticsRepo(addr string, dbName string) (*LedgerAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return NewLedgerAnalyticsRepoFromDB(conn), nil
}

func NewLedgerAnalyticsRepoFromDB(db *sql.DB) *LedgerAnalyticsRepo {
	return &LedgerAnalyticsRepo{db: db}
}

// LogBatch inserta un lote de movimientos; ClickHouse rinde mejor con inserciones en lote.
func (r *LedgerAnalyticsRepo) LogBatch(ctx context.Context, entries []*domain.Entry, eventType string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO ledger_log (id, kind, date, amount, category, payment_method, deleted, event_type, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	eventTime := time.Now().UTC()
	for _, e := range entries {
		var deleted uint8
		if e.DeletedAt != nil {
			deleted = 1
		}
		if _, err := stmt.ExecContext(ctx,
			e.ID,
			string(e.Kind),
			e.Date,
			e.Amount,
			e.Category,
			int32(e.PaymentMethod),
			deleted,
			eventType,
			eventTime,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for %s %d: %w", e.Kind, e.ID, err)
		}
	}

	return tx.Commit()
}

func (r *LedgerAnalyticsRepo) MonthlyBalance(ctx context.Context, from, to time.Time) ([]domain.MonthlyBalance, error) {
	query := `
		SELECT
			formatDateTime(date, '%Y-%m') AS month,
			sumIf(amount, kind = 'income')  AS income,
			sumIf(amount, kind = 'expense') AS expense
		FROM (
			SELECT
				id, kind,
				argMax(date, event_time)    AS date,
				argMax(amount, event_time)  AS amount,
				argMax(deleted, event_time) AS is_deleted
			FROM ledger_log
			GROUP BY id, kind
		)
		WHERE is_deleted = 0 AND date BETWEEN ? AND ?
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balance []domain.MonthlyBalance
	for rows.Next() {
		var b domain.MonthlyBalance
		if err := rows.Scan(&b.Month, &b.Income, &b.Expense); err != nil {
			return nil, err
		}
		b.Balance = b.Income - b.Expense
		balance = append(balance, b)
	}
	return balance, rows.Err()
}

// InitSchema crea la tabla en ClickHouse si no existe.
// Se particiona por mes del movimiento y se ordena por tipo e id.
func (r *LedgerAnalyticsRepo) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS ledger_log (
			id             Int64,
			kind           LowCardinality(String),
			date           DateTime64(3),
			amount         Float64,
			category       String,
			payment_method Int32,
			deleted        UInt8,
			event_type     String,
			event_time     DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(date)
		ORDER BY (kind, id, event_time);
	`
	_, err := r.db.Exec(query)
	return err
}

var _ domain.LedgerAnalyticsRepository = (*LedgerAnalyticsRepo)(nil)
