package models

import (
	"time"

	"github.com/google/uuid"
)

// ListingView deduplicates visits: at most one row per (listing, viewer),
// with viewed_at advancing only after the dedup window elapses.
type ListingView struct {
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;primaryKey"`
	ViewerID  uuid.UUID `gorm:"column:viewer_id;type:uuid;primaryKey"`
	ViewedAt  time.Time `gorm:"column:viewed_at;not null"`
}
