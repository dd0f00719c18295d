// Package tags provides the tag repository and the sync statement builder
// that keeps the page↔tag relationship consistent inside atomic batches.
package tags

import (
	"context"

	"webvault/internal/server/models"
)

// BindRecord names a tag and the page ids to bind to (or unbind from) it.
type BindRecord struct {
	TagName string
	PageIDs []int64
}

// Repository is the persistence contract for tags.
type Repository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Insert(ctx context.Context, name, color string) (int64, error)
	Update(ctx context.Context, id int64, name, color *string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
