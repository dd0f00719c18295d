// Package folders provides persistence for page folders.
package folders

import (
	"context"

	"webvault/internal/server/models"
)

// Repository is the persistence contract for folders.
type Repository interface {
	List(ctx context.Context) ([]*models.Folder, error)
	GetByID(ctx context.Context, id int64) (*models.Folder, error)
	Insert(ctx context.Context, name string) (int64, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
}
