package model

import (
	"time"
)

// Caller-supplied TTL bounds in seconds.
const (
	LinkTTLMin = 300
	LinkTTLMax = 30000
)

// ExpiringLink pairs an image's canonical URL with a creation time and TTL.
// Rows are immutable and are never deleted on expiry; validity is computed
// at read time.
type ExpiringLink struct {
	ID        string    `db:"id"`
	ImageID   string    `db:"image_id"`
	URL       string    `db:"url"` // Destination, copied from the image at creation time
	ExpiresIn int       `db:"expires_in"`
	CreatedAt time.Time `db:"created_at"`
}

func (l *ExpiringLink) ExpiresAt() time.Time {
	return l.CreatedAt.Add(time.Duration(l.ExpiresIn) * time.Second)
}

// Expired reports whether the link has expired at the given instant. The
// transition is one-way: valid strictly before createdAt+TTL, expired at and
// after it.
func (l *ExpiringLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt())
}
