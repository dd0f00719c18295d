package services

import (
	"context"
	"database/sql"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"webvault/internal/common"
	"webvault/internal/dbx"
	"webvault/internal/server/blob"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/pages"
	"webvault/internal/server/repositories/repomanager"
	"webvault/internal/server/repositories/tags"
)

// RecentPageLimit caps the recent-pages listing.
const RecentPageLimit = 20

// PageService owns page lifecycle and listings. Combined page+tag updates go
// through a single atomic batch; purge is the only path that touches blobs.
type PageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
}

// NewPageService constructs a PageService.
func NewPageService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store) *PageService {
	return &PageService{db: db, repomanager: m, blobs: blobs}
}

// QueryPages returns the filtered page listing plus the total count over the
// same predicate, so callers can compute has-more consistently.
func (s *PageService) QueryPages(ctx context.Context, f pages.Filter, pageNumber, pageSize int) ([]*models.Page, int64, error) {
	repo := s.repomanager.Pages(s.db)

	total, err := repo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting pages: %w", err)
	}
	list, err := repo.List(ctx, f, pageNumber, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pages: %w", err)
	}
	return list, total, nil
}

// GetPage returns one page in any non-purged state.
func (s *PageService) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	return s.repomanager.Pages(s.db).GetByID(ctx, id)
}

// GetPagesByURL returns all live snapshots of one original URL.
func (s *PageService) GetPagesByURL(ctx context.Context, pageURL string) ([]*models.Page, error) {
	return s.repomanager.Pages(s.db).GetByURL(ctx, pageURL)
}

// RecentPages returns the newest archived pages for the showcase.
func (s *PageService) RecentPages(ctx context.Context) ([]*models.Page, error) {
	return s.repomanager.Pages(s.db).ListRecent(ctx, RecentPageLimit)
}

// PageIDsInFolder returns the ids of every live page in a folder.
func (s *PageService) PageIDsInFolder(ctx context.Context, folderID int64) ([]int64, error) {
	return s.repomanager.Pages(s.db).AllIDsByFolder(ctx, folderID)
}

// GetPageContent fetches the archived content blob of a page.
func (s *PageService) GetPageContent(ctx context.Context, id int64) ([]byte, error) {
	page, err := s.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.blobs.Get(ctx, page.ContentKey)
}

// CreatePageParams carries a capture: page fields plus raw content and an
// optional screenshot.
type CreatePageParams struct {
	Title       string
	PageDesc    string
	PageURL     string
	FolderID    int64
	IsShowcased bool
	Content     []byte
	Screenshot  []byte
}

// Validate checks the capture fields.
func (p CreatePageParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.PageURL, validation.Required),
		validation.Field(&p.FolderID, validation.Required),
		validation.Field(&p.Content, validation.Required),
	)
}

// CreatePage uploads the capture blobs and inserts the page row.
func (s *PageService) CreatePage(ctx context.Context, p CreatePageParams) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	contentKey := blob.NewStorageKey()
	if err := s.blobs.Put(ctx, contentKey, p.Content); err != nil {
		return 0, fmt.Errorf("error storing content: %w", err)
	}

	var screenshotKey *string
	if len(p.Screenshot) > 0 {
		key := blob.NewStorageKey()
		if err := s.blobs.Put(ctx, key, p.Screenshot); err != nil {
			return 0, fmt.Errorf("error storing screenshot: %w", err)
		}
		screenshotKey = &key
	}

	page := &models.Page{
		Title:         p.Title,
		PageDesc:      p.PageDesc,
		PageURL:       p.PageURL,
		ContentKey:    contentKey,
		FolderID:      p.FolderID,
		ScreenshotKey: screenshotKey,
		IsShowcased:   p.IsShowcased,
	}
	id, err := s.repomanager.Pages(s.db).Insert(ctx, page)
	if err != nil {
		return 0, fmt.Errorf("error creating page: %w", err)
	}
	return id, nil
}

// UpdatePageParams carries a page update plus the tag edges to bind/unbind
// in the same atomic unit.
type UpdatePageParams struct {
	ID          int64
	FolderID    int64
	Title       string
	IsShowcased bool
	PageDesc    string
	PageURL     string
	Note        *string
	BindTags    []tags.BindRecord
	UnbindTags  []tags.BindRecord
}

// Validate checks the update fields.
func (p UpdatePageParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.FolderID, validation.Required),
		validation.Field(&p.Title, validation.Required),
	)
}

// UpdatePage applies the field changes and the tag binds/unbinds as one
// all-or-nothing batch: a failure in any tag statement leaves the page row
// untouched as well.
func (s *PageService) UpdatePage(ctx context.Context, p UpdatePageParams) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	repo := s.repomanager.Pages(s.db)
	page, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}

	page.FolderID = p.FolderID
	page.Title = p.Title
	page.IsShowcased = p.IsShowcased
	page.PageDesc = p.PageDesc
	page.PageURL = p.PageURL
	page.Note = p.Note

	stmts := []dbx.Statement{repo.UpdateStatement(page)}
	stmts = append(stmts, tags.BuildSyncStatements(p.BindTags, p.UnbindTags)...)

	if err := dbx.ExecBatch(ctx, s.db, stmts); err != nil {
		return fmt.Errorf("error updating page: %w", err)
	}
	return nil
}

// DeletePage moves an active page to the deleted state. The row and its
// blobs stay put so the page can be restored.
func (s *PageService) DeletePage(ctx context.Context, id int64) error {
	return s.transition(ctx, id, models.PageActive, s.repomanager.Pages(s.db).SoftDelete)
}

// RestorePage moves a deleted page back to the active state.
func (s *PageService) RestorePage(ctx context.Context, id int64) error {
	return s.transition(ctx, id, models.PageDeleted, s.repomanager.Pages(s.db).Restore)
}

func (s *PageService) transition(ctx context.Context, id int64, from models.PageState, op func(context.Context, int64) (bool, error)) error {
	page, err := s.repomanager.Pages(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if page.State() != from {
		return fmt.Errorf("%w: page %d is not in the required state", common.ErrValidation, id)
	}
	ok, err := op(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		// Concurrent transition beat us; the precondition no longer holds.
		return common.ErrNotFound
	}
	return nil
}

// PurgePage permanently removes a deleted page: its blobs, its share links
// and finally the row. Missing blobs are tolerated.
func (s *PageService) PurgePage(ctx context.Context, id int64) error {
	repo := s.repomanager.Pages(s.db)

	page, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if page.State() != models.PageDeleted {
		return fmt.Errorf("%w: page %d must be deleted before purge", common.ErrValidation, id)
	}

	keys := []string{page.ContentKey}
	if page.ScreenshotKey != nil {
		keys = append(keys, *page.ScreenshotKey)
	}
	if err := s.blobs.Delete(ctx, keys); err != nil {
		return fmt.Errorf("error deleting blobs: %w", err)
	}

	if err := s.repomanager.Shares(s.db).DeleteByPage(ctx, id); err != nil {
		return fmt.Errorf("error deleting share links: %w", err)
	}

	if _, err := repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("error deleting page: %w", err)
	}
	return nil
}

// CountAllPages returns the total number of live pages.
func (s *PageService) CountAllPages(ctx context.Context) (int64, error) {
	return s.repomanager.Pages(s.db).CountAll(ctx)
}
