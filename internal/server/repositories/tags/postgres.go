package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/models"
)

// PostgresRepository implements tag storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// page_ids comes back as a comma-joined string so it scans through
// database/sql without an array type mapper.
const tagSelect = `
	SELECT tags.id, tags.name, tags.color, tags.created_at, tags.updated_at,
		COALESCE(string_agg(page_tags.page_id::text, ','), '') AS page_ids
	FROM tags
	LEFT JOIN page_tags ON tags.id = page_tags.tag_id
`

func scanTag(row interface{ Scan(dest ...any) error }) (*models.Tag, error) {
	var t models.Tag
	var pageIDs string
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt, &pageIDs); err != nil {
		return nil, err
	}
	if pageIDs != "" {
		for _, s := range strings.Split(pageIDs, ",") {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad page id %q: %w", s, err)
			}
			t.PageIDs = append(t.PageIDs, id)
		}
	}
	return &t, nil
}

// List returns every tag with its derived page-id set. A tag with zero
// associated pages is still returned.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Tag, error) {
	query := tagSelect + ` GROUP BY tags.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one tag with its derived page-id set.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	query := tagSelect + ` WHERE tags.id = $1 GROUP BY tags.id`

	t, err := scanTag(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Insert creates a tag. A duplicate name surfaces as common.ErrConflict.
func (r *PostgresRepository) Insert(ctx context.Context, name, color string) (int64, error) {
	query := `
		INSERT INTO tags (name, color) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, name, color).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrConflict
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Update changes the name and/or color of a tag. Nil fields are left as is.
func (r *PostgresRepository) Update(ctx context.Context, id int64, name, color *string) (bool, error) {
	var sets []string
	var args []any

	if name != nil {
		args = append(args, *name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if color != nil {
		args = append(args, *color)
		sets = append(sets, fmt.Sprintf("color = $%d", len(args)))
	}
	if len(sets) == 0 {
		return false, common.ErrValidation
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tags SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

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

// Delete removes the tag row; page_tags edges go with it via cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
