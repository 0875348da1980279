package engagement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/pagination"
)

// SavedPage is one cursor page of a user's saved listings, newest save first.
type SavedPage struct {
	Items      []models.Listing `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// Repository encapsulates engagement persistence.
type Repository interface {
	ToggleSavedListing(ctx context.Context, userID, listingID uuid.UUID) error
	ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedPage, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an engagement repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ToggleSavedListing flips the saved relation in one statement. The CTE
// deletes an existing row; the insert only fires when the delete found
// nothing, so concurrent flips of the same pair serialize at the row.
func (r *repository) ToggleSavedListing(ctx context.Context, userID, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
WITH deleted AS (
	DELETE FROM saved_listings WHERE user_id = ? AND listing_id = ? RETURNING 1
)
INSERT INTO saved_listings (user_id, listing_id)
SELECT ?, ?
WHERE NOT EXISTS (SELECT 1 FROM deleted)
ON CONFLICT (user_id, listing_id) DO NOTHING`,
		userID, listingID, userID, listingID).Error
}

// ToggleFollow flips the follow relation using the same single-statement shape.
func (r *repository) ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
WITH deleted AS (
	DELETE FROM follows WHERE follower_id = ? AND following_id = ? RETURNING 1
)
INSERT INTO follows (follower_id, following_id)
SELECT ?, ?
WHERE NOT EXISTS (SELECT 1 FROM deleted)
ON CONFLICT (follower_id, following_id) DO NOTHING`,
		followerID, followingID, followerID, followingID).Error
}

// ListSaved pages through the user's saved listings by save recency.
func (r *repository) ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedPage, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)

	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return SavedPage{}, err
	}

	query := r.db.WithContext(ctx).
		Table("saved_listings sl").
		Select("l.*, sl.created_at AS saved_at").
		Joins("JOIN listings l ON l.id = sl.listing_id").
		Where("sl.user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(sl.created_at < ?) OR (sl.created_at = ? AND sl.listing_id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("sl.created_at DESC").Order("sl.listing_id DESC").Limit(limitWithBuffer)

	type savedRecord struct {
		models.Listing
		SavedAt time.Time `gorm:"column:saved_at"`
	}

	var records []savedRecord
	if err := query.Scan(&records).Error; err != nil {
		return SavedPage{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.SavedAt,
			ID:        last.Listing.ID,
		})
	}

	items := make([]models.Listing, 0, len(records))
	for _, record := range records {
		items = append(items, record.Listing)
	}

	return SavedPage{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}
