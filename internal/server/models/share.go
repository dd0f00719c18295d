package models

import "time"

// ShareLink is a randomly-coded, optionally time-limited public pointer
// to one page. A nil ExpiresAt means the link never expires.
type ShareLink struct {
	ID        int64
	PageID    int64
	ShareCode string
	ExpiresAt *time.Time
	CreatedAt time.Time

	// PageTitle is populated only by listings that join pages.
	PageTitle string
}

// Expired reports whether the link is past its expiry at the given instant.
// Expiry is evaluated lazily at read time; expired rows stay in the store.
func (l *ShareLink) Expired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return l.ExpiresAt.Before(now)
}
