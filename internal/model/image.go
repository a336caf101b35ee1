package model

import (
	"time"
)

// Image records ownership and the canonical provider URL of an upload.
// Names are unique across all images, not per owner.
type Image struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
