package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"webvault/internal/common"
	"webvault/internal/dbx"
)

// PostgresRepository implements settings storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetAdminToken returns the stored credential digest, or common.ErrNotFound
// when no credential has been bootstrapped yet.
func (r *PostgresRepository) GetAdminToken(ctx context.Context) (string, error) {
	query := `SELECT value FROM stores WHERE key = $1`

	var digest string
	err := r.db.QueryRowContext(ctx, query, AdminTokenKey).Scan(&digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return digest, nil
}

// CreateAdminToken persists the credential digest, succeeding only if no
// credential exists. The primary key on stores.key closes the race between
// two concurrent bootstrap attempts at the store level: the loser sees zero
// rows affected and gets common.ErrConflict.
func (r *PostgresRepository) CreateAdminToken(ctx context.Context, digest string) error {
	query := `INSERT INTO stores (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, AdminTokenKey, digest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrConflict
	}
	return nil
}

// GetShouldShowRecent reads the showcase toggle; absent means enabled.
func (r *PostgresRepository) GetShouldShowRecent(ctx context.Context) (bool, error) {
	query := `SELECT value FROM stores WHERE key = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, ShouldShowRecentKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return value == "true", nil
}

// SetShouldShowRecent upserts the showcase toggle.
func (r *PostgresRepository) SetShouldShowRecent(ctx context.Context, value bool) error {
	query := `
		INSERT INTO stores (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	v := "false"
	if value {
		v = "true"
	}
	if _, err := r.db.ExecContext(ctx, query, ShouldShowRecentKey, v); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
