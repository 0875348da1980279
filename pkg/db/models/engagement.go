package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedListing marks that a user saved a listing. Existence is the only state.
type SavedListing struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Follow marks that one user follows another. Self-follows are never stored.
type Follow struct {
	FollowerID  uuid.UUID `gorm:"column:follower_id;type:uuid;primaryKey"`
	FollowingID uuid.UUID `gorm:"column:following_id;type:uuid;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
