package shares

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
)

// PostgresRepository implements share link storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a share link. A code collision violates the unique
// constraint on share_code and surfaces as common.ErrConflict; the caller
// decides whether to regenerate.
func (r *PostgresRepository) Create(ctx context.Context, pageID int64, shareCode string, expiresAt *time.Time) (*models.ShareLink, error) {
	query := `
		INSERT INTO share_links (page_id, share_code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	link := &models.ShareLink{PageID: pageID, ShareCode: shareCode, ExpiresAt: expiresAt}
	err := r.db.QueryRowContext(ctx, query, pageID, shareCode, expiresAt).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return link, nil
}

// GetByCode looks a link up by its public code. Expired links are still
// returned; expiry is the caller's read-time concern.
func (r *PostgresRepository) GetByCode(ctx context.Context, shareCode string) (*models.ShareLink, error) {
	query := `SELECT id, page_id, share_code, expires_at, created_at FROM share_links WHERE share_code = $1`

	var link models.ShareLink
	err := r.db.QueryRowContext(ctx, query, shareCode).Scan(
		&link.ID, &link.PageID, &link.ShareCode, &link.ExpiresAt, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &link, nil
}

// ListByPage returns all links for one page, newest first.
func (r *PostgresRepository) ListByPage(ctx context.Context, pageID int64) ([]*models.ShareLink, error) {
	query := `
		SELECT id, page_id, share_code, expires_at, created_at
		FROM share_links WHERE page_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, pageID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ShareLink
	for rows.Next() {
		var link models.ShareLink
		if err := rows.Scan(&link.ID, &link.PageID, &link.ShareCode, &link.ExpiresAt, &link.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every link joined with its page title, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.ShareLink, error) {
	query := `
		SELECT s.id, s.page_id, s.share_code, s.expires_at, s.created_at, COALESCE(p.title, '')
		FROM share_links s
		LEFT JOIN pages p ON s.page_id = p.id
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ShareLink
	for rows.Next() {
		var link models.ShareLink
		if err := rows.Scan(&link.ID, &link.PageID, &link.ShareCode, &link.ExpiresAt, &link.CreatedAt, &link.PageTitle); err != nil {
			return nil, err
		}
		result = append(result, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes one link by id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

// DeleteByPage removes every link pointing at the page.
func (r *PostgresRepository) DeleteByPage(ctx context.Context, pageID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE page_id = $1`, pageID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
