package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"
)

// Open abre la base SQLite con claves foráneas activas y un formato de
// fecha ordenable como texto. path puede ser ":memory:".
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Una sola conexión: en memoria cada conexión sería otra base, y en fichero
	// evitamos "database is locked" con escrituras concurrentes.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Exec ejecuta sentencias DDL en orden; lo usan los InitSQLite de cada agregado.
func Exec(db *sql.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InitOutbox crea la tabla outbox compartida por todos los agregados.
func InitOutbox(db *sql.DB) error {
	return Exec(db, `
        CREATE TABLE IF NOT EXISTS outbox (
            id TEXT PRIMARY KEY,
            aggregate_type TEXT NOT NULL,
            aggregate_id TEXT NOT NULL,
            event_type TEXT NOT NULL,
            payload TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            processed BOOLEAN NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at)`,
	)
}
