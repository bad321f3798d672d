package sqlq

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// WithTx ejecuta fn dentro de una transacción; hace rollback si fn falla.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SoftDelete marca deleted_at en la fila activa id de table.
// Devuelve false si no había fila activa con ese id.
func SoftDelete(ctx context.Context, tx Execer, d Dialect, table string, id int64, at time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx,
		d.Rebind(fmt.Sprintf(`UPDATE %s SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, table)),
		at, id,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Affected indica si la sentencia tocó alguna fila.
func Affected(res sql.Result) (bool, error) {
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
