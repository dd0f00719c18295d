package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
)

const pageColumns = `id, title, page_desc, page_url, content_key, folder_id,
		screenshot_key, note, is_showcased, is_deleted, deleted_at, created_at, updated_at`

// PostgresRepository implements page storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPage(row interface{ Scan(dest ...any) error }) (*models.Page, error) {
	var p models.Page
	err := row.Scan(
		&p.ID, &p.Title, &p.PageDesc, &p.PageURL, &p.ContentKey, &p.FolderID,
		&p.ScreenshotKey, &p.Note, &p.IsShowcased, &p.IsDeleted, &p.DeletedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Count returns the number of non-deleted pages matching the filter,
// using the same predicate as List.
func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := buildFilter(f)
	query := `SELECT COUNT(*) FROM pages WHERE ` + where

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// List returns non-deleted pages matching the filter, newest first.
// Pagination applies only when both pageNumber and pageSize are positive;
// otherwise the full filtered set is returned.
func (r *PostgresRepository) List(ctx context.Context, f Filter, pageNumber, pageSize int) ([]*models.Page, error) {
	where, args := buildFilter(f)
	query := `SELECT ` + pageColumns + ` FROM pages WHERE ` + where + ` ORDER BY created_at DESC`

	if pageNumber > 0 && pageSize > 0 {
		args = append(args, pageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (pageNumber-1)*pageSize)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryPages(ctx, query, args...)
}

func (r *PostgresRepository) queryPages(ctx context.Context, query string, args ...any) ([]*models.Page, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the page regardless of its delete state. Callers that only
// want live pages check State themselves.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`

	p, err := scanPage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// GetByURL returns all non-deleted snapshots of the given original URL.
func (r *PostgresRepository) GetByURL(ctx context.Context, pageURL string) ([]*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE page_url = $1 AND is_deleted = FALSE`
	return r.queryPages(ctx, query, pageURL)
}

// ListRecent returns the most recently archived pages.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE is_deleted = FALSE ORDER BY created_at DESC LIMIT $1`
	return r.queryPages(ctx, query, limit)
}

// AllIDsByFolder returns the ids of every non-deleted page in the folder.
func (r *PostgresRepository) AllIDsByFolder(ctx context.Context, folderID int64) ([]int64, error) {
	query := `SELECT id FROM pages WHERE folder_id = $1 AND is_deleted = FALSE`

	rows, err := r.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// CountAll returns the total number of non-deleted pages.
func (r *PostgresRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Count(ctx, Filter{})
}

// Insert stores a newly captured page and returns its assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Page) (int64, error) {
	query := `
		INSERT INTO pages (title, page_desc, page_url, content_key, folder_id, screenshot_key, is_showcased)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.PageDesc, p.PageURL, p.ContentKey, p.FolderID, p.ScreenshotKey, p.IsShowcased).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// UpdateStatement builds the page-row update for a combined page+tag batch.
// The statement is not executed here; the service runs it through
// dbx.ExecBatch together with the tag sync statements.
func (r *PostgresRepository) UpdateStatement(p *models.Page) dbx.Statement {
	return dbx.Statement{
		SQL: `
			UPDATE pages
			SET folder_id = $1, title = $2, is_showcased = $3, page_desc = $4,
				page_url = $5, note = $6, updated_at = now()
			WHERE id = $7
		`,
		Args: []any{p.FolderID, p.Title, p.IsShowcased, p.PageDesc, p.PageURL, p.Note, p.ID},
	}
}

// SoftDelete flips the delete flag and stamps the deletion time. Returns
// false when the page is absent or already deleted.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE pages SET is_deleted = TRUE, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
	`
	return r.execAffected(ctx, query, id)
}

// Restore clears the delete flag. Returns false when the page is absent or
// not deleted.
func (r *PostgresRepository) Restore(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE pages SET is_deleted = FALSE, deleted_at = NULL, updated_at = now()
		WHERE id = $1 AND is_deleted = TRUE
	`
	return r.execAffected(ctx, query, id)
}

// HardDelete removes the row. Blob deletion is the caller's concern.
func (r *PostgresRepository) HardDelete(ctx context.Context, id int64) (bool, error) {
	return r.execAffected(ctx, `DELETE FROM pages WHERE id = $1`, id)
}

func (r *PostgresRepository) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
