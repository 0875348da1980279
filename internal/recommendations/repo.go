package recommendations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
)

// Repository encapsulates recommendation queries.
type Repository interface {
	FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	SimilarListings(ctx context.Context, seed *models.Listing, minPriceCents, maxPriceCents int, limit int) ([]models.Listing, error)
	RecentListings(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Listing, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a recommendations repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// SimilarListings returns same-category/campus/type listings in the price
// band, most recent first with id as the tie-break so the order is stable.
func (r *repository) SimilarListings(ctx context.Context, seed *models.Listing, minPriceCents, maxPriceCents int, limit int) ([]models.Listing, error) {
	var records []models.Listing
	err := r.db.WithContext(ctx).
		Where("id <> ?", seed.ID).
		Where("category = ?", seed.Category).
		Where("campus = ?", seed.Campus).
		Where("transaction_type = ?", seed.TransactionType).
		Where("price_cents BETWEEN ? AND ?", minPriceCents, maxPriceCents).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).
		Error
	return records, err
}

// RecentListings backfills by creation recency, excluding already-picked ids.
func (r *repository) RecentListings(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Listing, error) {
	query := r.db.WithContext(ctx).Model(&models.Listing{})
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var records []models.Listing
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).
		Error
	return records, err
}
