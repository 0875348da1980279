package listings

import (
	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// CreateInput carries the fields a seller submits for a new listing.
type CreateInput struct {
	OwnerID          uuid.UUID
	Title            string
	Description      string
	PriceCents       int
	Category         string
	Condition        string
	Campus           string
	TransactionType  enums.TransactionType
	DeliveryOptions  []string
	RentalPeriodDays *int
}

// BrowseFilter narrows the public listing feed.
type BrowseFilter struct {
	Campus          string
	Category        string
	TransactionType string
	Limit           int
	Cursor          string
}

// BrowsePage is one cursor page of the listing feed, newest first.
type BrowsePage struct {
	Items      []models.Listing `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
