package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	TierID       *string   `db:"tier_id"` // Nullable: users may have no tier assigned
	CreatedAt    time.Time `db:"created_at"`

	// Resolved tier (not in database); nil when TierID is unset
	Tier *AccountTier `db:"-"`
}
