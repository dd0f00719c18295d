// Package shares provides persistence for public share links.
package shares

import (
	"context"
	"time"

	"webvault/internal/server/models"
)

// Repository is the persistence contract for share links.
type Repository interface {
	Create(ctx context.Context, pageID int64, shareCode string, expiresAt *time.Time) (*models.ShareLink, error)
	GetByCode(ctx context.Context, shareCode string) (*models.ShareLink, error)
	ListByPage(ctx context.Context, pageID int64) ([]*models.ShareLink, error)
	ListAll(ctx context.Context) ([]*models.ShareLink, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByPage(ctx context.Context, pageID int64) error
}
