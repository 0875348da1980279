package views

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
)

// Repository encapsulates view-dedup persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	UpsertView(ctx context.Context, listingID, viewerID uuid.UUID, now, cutoff time.Time) (int64, error)
	IncrementViewCount(ctx context.Context, listingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a views repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpsertView writes the dedup row in one guarded statement. A fresh pair
// inserts; a stale pair (outside the window, viewed_at <= cutoff) advances
// viewed_at; a pair inside the window matches nothing and affects zero rows.
// The row count therefore says whether this visit earned an increment.
func (r *repository) UpsertView(ctx context.Context, listingID, viewerID uuid.UUID, now, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
INSERT INTO listing_views (listing_id, viewer_id, viewed_at) VALUES (?, ?, ?)
ON CONFLICT (listing_id, viewer_id)
DO UPDATE SET viewed_at = EXCLUDED.viewed_at
WHERE listing_views.viewed_at <= ?`,
		listingID, viewerID, now, cutoff)
	return result.RowsAffected, result.Error
}

func (r *repository) IncrementViewCount(ctx context.Context, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE listings SET view_count = view_count + 1 WHERE id = ?`, listingID).
		Error
}
