package models

import "time"

// Tag is a user-defined label, many-to-many with pages. PageIDs is derived
// from the page_tags join at query time and is never stored on the tag row.
type Tag struct {
	ID        int64
	Name      string
	Color     string
	PageIDs   []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
