package models

import (
	"time"

	"github.com/google/uuid"
)

// Bundle groups a seller's own listings under a shared discount.
type Bundle struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID         uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Title           string    `gorm:"column:title;not null"`
	Description     *string   `gorm:"column:description"`
	DiscountPercent int       `gorm:"column:discount_percent;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
