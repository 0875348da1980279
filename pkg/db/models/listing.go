package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Listing represents an item or service posted for sale or rent.
type Listing struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID            uuid.UUID             `gorm:"column:owner_id;type:uuid;not null;index"`
	Title              string                `gorm:"column:title;not null"`
	Description        string                `gorm:"column:description;not null"`
	PriceCents         int                   `gorm:"column:price_cents;not null"`
	OriginalPriceCents *int                  `gorm:"column:original_price_cents"`
	DiscountPercent    *int                  `gorm:"column:discount_percent"`
	Category           string                `gorm:"column:category;not null"`
	Condition          string                `gorm:"column:condition;not null"`
	Campus             string                `gorm:"column:campus;not null"`
	TransactionType    enums.TransactionType `gorm:"column:transaction_type;not null;default:SELL"`
	DeliveryOptions    pq.StringArray        `gorm:"column:delivery_options;type:text[];not null;default:ARRAY[]::text[]"`
	RentalPeriodDays   *int                  `gorm:"column:rental_period_days"`
	Status             enums.ListingStatus   `gorm:"column:status;not null;default:AVAILABLE"`
	BundleID           *uuid.UUID            `gorm:"column:bundle_id;type:uuid;index"`
	ReviewsDisabled    bool                  `gorm:"column:reviews_disabled;not null;default:false"`
	ViewCount          int                   `gorm:"column:view_count;not null;default:0"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
