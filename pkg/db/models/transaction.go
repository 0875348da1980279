package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the immutable record of a finalized sale. At most one row
// exists per (listing, buyer) pair.
type Transaction struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID   uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:ux_transactions_listing_buyer"`
	SellerID    uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	BuyerID     uuid.UUID `gorm:"column:buyer_id;type:uuid;not null;uniqueIndex:ux_transactions_listing_buyer"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	CompletedAt time.Time `gorm:"column:completed_at;autoCreateTime"`
}
