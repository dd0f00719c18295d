package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// Statement is one parameterized SQL statement destined for a batch.
type Statement struct {
	SQL  string
	Args []any
}

// ExecBatch runs the given statements in order inside a single transaction.
// Either every statement is applied or none are: the first failing statement
// rolls the whole batch back and its error is returned, wrapped with the
// statement's position.
func ExecBatch(ctx context.Context, db *sql.DB, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		for i, s := range stmts {
			if _, err := tx.ExecContext(ctx, s.SQL, s.Args...); err != nil {
				return fmt.Errorf("batch statement %d: %w", i, err)
			}
		}
		return nil
	})
}
