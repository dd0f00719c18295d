// Package models defines the persistent entities of the archive:
// pages, folders, tags, share links.
package models

import "time"

// PageState describes where a page is in its delete lifecycle.
// Active pages are visible everywhere; deleted pages keep their row
// (and blobs) and can be restored; purged pages are gone for good.
type PageState int

const (
	PageActive PageState = iota
	PageDeleted
	PagePurged
)

// Page is one archived web snapshot. ContentKey and ScreenshotKey are
// opaque blob-store keys; a page may have no screenshot.
type Page struct {
	ID            int64
	Title         string
	PageDesc      string
	PageURL       string
	ContentKey    string
	FolderID      int64
	ScreenshotKey *string
	Note          *string
	IsShowcased   bool
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// State maps the stored soft-delete flag onto the lifecycle state.
// A purged page has no row, so it never reaches this method.
func (p *Page) State() PageState {
	if p.IsDeleted {
		return PageDeleted
	}
	return PageActive
}
