// Package stores persists key/value settings, including the single admin
// credential digest under a fixed key.
package stores

import "context"

// AdminTokenKey is the fixed stores key holding the admin credential digest.
const AdminTokenKey = "ADMIN_TOKEN"

// ShouldShowRecentKey toggles the recent-pages block on the public showcase.
const ShouldShowRecentKey = "SHOULD_SHOW_RECENT"

// Repository is the persistence contract for the stores table.
type Repository interface {
	GetAdminToken(ctx context.Context) (string, error)
	CreateAdminToken(ctx context.Context, digest string) error
	GetShouldShowRecent(ctx context.Context) (bool, error)
	SetShouldShowRecent(ctx context.Context, value bool) error
}
