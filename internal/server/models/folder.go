package models

import "time"

// Folder is a named container of pages.
type Folder struct {
	ID        int64
	Name      string
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
