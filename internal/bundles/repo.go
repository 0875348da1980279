package bundles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Repository encapsulates bundle persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBundle(ctx context.Context, bundle *models.Bundle) error
	FindBundle(ctx context.Context, id uuid.UUID) (*models.Bundle, error)
	FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Listing, error)
	AttachListings(ctx context.Context, bundleID, ownerID uuid.UUID, listingIDs []uuid.UUID, discountPercent int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a bundle repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateBundle(ctx context.Context, bundle *models.Bundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *repository) FindBundle(ctx context.Context, id uuid.UUID) (*models.Bundle, error) {
	var bundle models.Bundle
	if err := r.db.WithContext(ctx).First(&bundle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *repository) FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Listing, error) {
	var records []models.Listing
	if len(ids) == 0 {
		return records, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&records).
		Error
	return records, err
}

// AttachListings binds eligible rows to the bundle. The WHERE clause is the
// eligibility rule: owned by ownerID, AVAILABLE, not yet bundled. Rows that
// fail it are skipped, not errored, and the count reports what actually moved.
func (r *repository) AttachListings(ctx context.Context, bundleID, ownerID uuid.UUID, listingIDs []uuid.UUID, discountPercent int) (int64, error) {
	if len(listingIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Exec(`
UPDATE listings
SET bundle_id = ?,
	discount_percent = ?,
	original_price_cents = price_cents,
	updated_at = ?
WHERE id IN ?
	AND owner_id = ?
	AND status = ?
	AND bundle_id IS NULL`,
		bundleID, discountPercent, time.Now().UTC(), listingIDs, ownerID, enums.ListingStatusAvailable)
	return result.RowsAffected, result.Error
}
