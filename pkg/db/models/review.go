package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Review is feedback attached to a transaction (mutual path, with a derived
// role) or directly to a listing/seller pair (generic path, role unset).
type Review struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Rating        int               `gorm:"column:rating;not null"`
	Comment       *string           `gorm:"column:comment"`
	ReviewerID    uuid.UUID         `gorm:"column:reviewer_id;type:uuid;not null;index"`
	SubjectID     uuid.UUID         `gorm:"column:subject_id;type:uuid;not null;index"`
	ListingID     *uuid.UUID        `gorm:"column:listing_id;type:uuid;index"`
	TransactionID *uuid.UUID        `gorm:"column:transaction_id;type:uuid"`
	Role          *enums.ReviewRole `gorm:"column:role"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}
