package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Repository encapsulates offer persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, offer *models.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	DecideOffer(ctx context.Context, offerID uuid.UUID, decision enums.OfferStatus) (int64, error)
	ReserveListing(ctx context.Context, listingID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an offer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *repository) FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// DecideOffer records a one-shot decision. The status guard in the WHERE
// clause makes concurrent decisions race-safe: exactly one wins. The
// timestamp is bound from Go so the statement runs on both drivers.
func (r *repository) DecideOffer(ctx context.Context, offerID uuid.UUID, decision enums.OfferStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE offers SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			decision, time.Now().UTC(), offerID, enums.OfferStatusPending)
	return result.RowsAffected, result.Error
}

// ReserveListing moves an AVAILABLE listing to RESERVED. Zero rows affected
// means the listing had already left AVAILABLE; the caller treats that as fine.
func (r *repository) ReserveListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE listings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
			enums.ListingStatusReserved, time.Now().UTC(), listingID, enums.ListingStatusAvailable)
	return result.RowsAffected, result.Error
}
