package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

// Repository encapsulates sale finalization persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	MarkListingSold(ctx context.Context, listingID uuid.UUID) (int64, error)
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository bound to the provided gorm DB.
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

// MarkListingSold moves a listing to SOLD only from AVAILABLE or RESERVED.
// The guard in the WHERE clause serializes concurrent finalizations.
func (r *repository) MarkListingSold(ctx context.Context, listingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec(`UPDATE listings SET status = ?, updated_at = ? WHERE id = ? AND status IN (?, ?)`,
			enums.ListingStatusSold, time.Now().UTC(), listingID, enums.ListingStatusAvailable, enums.ListingStatusReserved)
	return result.RowsAffected, result.Error
}

func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}
