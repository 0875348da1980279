package listings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/pagination"
)

// Repository encapsulates listing persistence.
type Repository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Browse(ctx context.Context, filter BrowseFilter) (BrowsePage, error)
	FlipReviewsDisabled(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a listing repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Browse pages through listings newest first using a keyset cursor.
func (r *repository) Browse(ctx context.Context, filter BrowseFilter) (BrowsePage, error) {
	normalizedLimit := pagination.NormalizeLimit(filter.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(filter.Limit)

	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(filter.Cursor))
	if err != nil {
		return BrowsePage{}, err
	}

	query := r.db.WithContext(ctx).Model(&models.Listing{})
	if filter.Campus != "" {
		query = query.Where("campus = ?", filter.Campus)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.TransactionType != "" {
		query = query.Where("transaction_type = ?", filter.TransactionType)
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var records []models.Listing
	if err := query.Find(&records).Error; err != nil {
		return BrowsePage{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return BrowsePage{
		Items:      records,
		NextCursor: nextCursor,
	}, nil
}

// FlipReviewsDisabled inverts the flag in a single statement and returns the
// new value. Read-then-write in Go would race with concurrent flips.
func (r *repository) FlipReviewsDisabled(ctx context.Context, id uuid.UUID) (bool, error) {
	var newValue bool
	err := r.db.WithContext(ctx).
		Raw(`UPDATE listings SET reviews_disabled = NOT reviews_disabled, updated_at = ? WHERE id = ? RETURNING reviews_disabled`, time.Now().UTC(), id).
		Scan(&newValue).
		Error
	if err != nil {
		return false, err
	}
	return newValue, nil
}
