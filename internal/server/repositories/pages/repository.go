// Package pages provides the page repository: dynamic filtered listings,
// counts and the page-row statements used by combined page+tag updates.
package pages

import (
	"context"

	"webvault/internal/dbx"
	"webvault/internal/server/models"
)

// Filter holds the optional page-listing predicates. All set fields are
// combined with AND; only non-deleted pages are ever considered.
type Filter struct {
	FolderID *int64
	Keyword  string
	TagID    *int64
}

// Repository is the persistence contract for pages.
//
// Count and List are built from the same filter construction so the two can
// never diverge; callers rely on that to compute has-more/total-pages logic.
type Repository interface {
	Count(ctx context.Context, f Filter) (int64, error)
	List(ctx context.Context, f Filter, pageNumber, pageSize int) ([]*models.Page, error)
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	GetByURL(ctx context.Context, pageURL string) ([]*models.Page, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Page, error)
	AllIDsByFolder(ctx context.Context, folderID int64) ([]int64, error)
	CountAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, p *models.Page) (int64, error)
	UpdateStatement(p *models.Page) dbx.Statement
	SoftDelete(ctx context.Context, id int64) (bool, error)
	Restore(ctx context.Context, id int64) (bool, error)
	HardDelete(ctx context.Context, id int64) (bool, error)
}
