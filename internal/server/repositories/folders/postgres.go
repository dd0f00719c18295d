package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all non-deleted folders, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Folder, error) {
	query := `
		SELECT id, name, is_deleted, deleted_at, created_at, updated_at
		FROM folders WHERE is_deleted = FALSE
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.IsDeleted, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one folder.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `
		SELECT id, name, is_deleted, deleted_at, created_at, updated_at
		FROM folders WHERE id = $1
	`
	var f models.Folder
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.IsDeleted, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &f, nil
}

// Insert creates a folder and returns its assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO folders (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Rename updates the folder name.
func (r *PostgresRepository) Rename(ctx context.Context, id int64, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE folders SET name = $1, updated_at = now() WHERE id = $2`, name, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
