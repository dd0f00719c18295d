package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"webvault/internal/common"
	"webvault/internal/server/models"
	"webvault/internal/server/repositories/repomanager"
)

// ShareService issues and resolves public share links. Expiry is computed at
// creation and evaluated lazily at read time; there is no background sweep.
type ShareService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewShareService constructs a ShareService. A nil now func defaults to
// time.Now; tests inject their own clock.
func NewShareService(db *sql.DB, m repomanager.RepositoryManager, now func() time.Time) *ShareService {
	if now == nil {
		now = time.Now
	}
	return &ShareService{db: db, repomanager: m, now: now}
}

// CreateShareLink makes a new link for a live page. expiresInHours nil or 0
// means the link never expires; a negative value is a validation error. A
// share-code collision surfaces as common.ErrConflict from the store's
// unique constraint; it is not retried here.
func (s *ShareService) CreateShareLink(ctx context.Context, pageID int64, expiresInHours *int) (*models.ShareLink, error) {
	if expiresInHours != nil && *expiresInHours < 0 {
		return nil, fmt.Errorf("%w: expiresInHours must be positive or null", common.ErrValidation)
	}

	page, err := s.repomanager.Pages(s.db).GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.State() != models.PageActive {
		return nil, common.ErrNotFound
	}

	code, err := common.MakeShareCode()
	if err != nil {
		return nil, fmt.Errorf("error generating share code: %w", err)
	}

	var expiresAt *time.Time
	if expiresInHours != nil && *expiresInHours > 0 {
		t := s.now().Add(time.Duration(*expiresInHours) * time.Hour)
		expiresAt = &t
	}

	link, err := s.repomanager.Shares(s.db).Create(ctx, pageID, code, expiresAt)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// ResolveShareCode is the single lookup path for the public, unauthenticated
// share-viewing flow. It returns the link's page only while the link is
// usable; an expired or dangling link reads as not found.
func (s *ShareService) ResolveShareCode(ctx context.Context, code string) (*models.ShareLink, *models.Page, error) {
	link, err := s.repomanager.Shares(s.db).GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if link.Expired(s.now()) {
		return nil, nil, common.ErrNotFound
	}

	page, err := s.repomanager.Pages(s.db).GetByID(ctx, link.PageID)
	if err != nil {
		return nil, nil, err
	}
	if page.State() != models.PageActive {
		return nil, nil, common.ErrNotFound
	}
	return link, page, nil
}

// GetShareLinkByCode returns the raw link row regardless of expiry, for
// admin inspection.
func (s *ShareService) GetShareLinkByCode(ctx context.Context, code string) (*models.ShareLink, error) {
	return s.repomanager.Shares(s.db).GetByCode(ctx, code)
}

// ListShareLinksForPage lists all links of one page, newest first.
func (s *ShareService) ListShareLinksForPage(ctx context.Context, pageID int64) ([]*models.ShareLink, error) {
	return s.repomanager.Shares(s.db).ListByPage(ctx, pageID)
}

// ListAllShareLinks lists every link with its page title.
func (s *ShareService) ListAllShareLinks(ctx context.Context) ([]*models.ShareLink, error) {
	return s.repomanager.Shares(s.db).ListAll(ctx)
}

// DeleteShareLink removes one link.
func (s *ShareService) DeleteShareLink(ctx context.Context, id int64) error {
	ok, err := s.repomanager.Shares(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}

// IsExpired reports link usability at the service clock, tolerating a nil
// link for convenience in handlers.
func (s *ShareService) IsExpired(link *models.ShareLink) bool {
	if link == nil {
		return true
	}
	return link.Expired(s.now())
}
