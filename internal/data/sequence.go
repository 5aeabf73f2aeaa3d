package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	postSequence    = "posts"
	commentSequence = "comments"
)

// nextID reserves the next value of the named sequence inside tx.
// Sequences start at 0 and never hand out the same value twice.
func nextID(ctx context.Context, tx *sqlx.Tx, name string) (uint64, error) {
	res, err := tx.ExecContext(ctx, `UPDATE id_sequences SET next_id = next_id + 1 WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("sequence %s does not exist", name)
	}

	var next uint64
	if err := tx.GetContext(ctx, &next, `SELECT next_id FROM id_sequences WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return next - 1, nil
}
