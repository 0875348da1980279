package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Offer is a buyer's proposed price on a listing awaiting one seller decision.
type Offer struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID   uuid.UUID         `gorm:"column:listing_id;type:uuid;not null;index"`
	BuyerID     uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index"`
	SellerID    uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	AmountCents int               `gorm:"column:amount_cents;not null"`
	Message     *string           `gorm:"column:message"`
	Status      enums.OfferStatus `gorm:"column:status;not null;default:PENDING"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
