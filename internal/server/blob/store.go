// Package blob stores page content and screenshots in an S3-compatible
// object store.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the object-store contract consumed by services. Delete must
// tolerate keys that do not exist: a page may have no screenshot, and purge
// retries must not fail on half-removed blobs.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys []string) error
}

// NewStorageKey returns a fresh date-partitioned object key.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("pages/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
