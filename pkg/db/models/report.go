package models

import (
	"time"

	"github.com/google/uuid"
)

// Report flags a listing for moderation. Handling the queue is external to
// this service; the engine only records submissions.
type Report struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID  uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index"`
	ReporterID uuid.UUID `gorm:"column:reporter_id;type:uuid;not null;index"`
	Reason     string    `gorm:"column:reason;not null"`
	Details    *string   `gorm:"column:details"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
