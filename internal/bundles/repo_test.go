package bundles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
)

func setupBundlesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	listings := `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  original_price_cents INTEGER,
  discount_percent INTEGER,
  status TEXT NOT NULL DEFAULT 'AVAILABLE',
  bundle_id TEXT,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(listings).Error)
	return db
}

func seedAttachCandidate(t *testing.T, db *gorm.DB, ownerID uuid.UUID, status enums.ListingStatus, bundleID *uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO listings (id, owner_id, price_cents, status, bundle_id) VALUES (?, ?, 1000, ?, ?)`,
		id, ownerID, status, bundleID).Error)
	return id
}

func TestAttachListingsOnlyMovesEligibleRows(t *testing.T) {
	db := setupBundlesTestDB(t)
	repo := NewRepository(db)
	ownerID := uuid.New()
	bundleID := uuid.New()
	otherBundle := uuid.New()

	eligible := seedAttachCandidate(t, db, ownerID, enums.ListingStatusAvailable, nil)
	foreign := seedAttachCandidate(t, db, uuid.New(), enums.ListingStatusAvailable, nil)
	reserved := seedAttachCandidate(t, db, ownerID, enums.ListingStatusReserved, nil)
	bundled := seedAttachCandidate(t, db, ownerID, enums.ListingStatusAvailable, &otherBundle)

	attached, err := repo.AttachListings(context.Background(), bundleID, ownerID,
		[]uuid.UUID{eligible, foreign, reserved, bundled}, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(1), attached)

	type row struct {
		BundleID           *string
		DiscountPercent    *int
		OriginalPriceCents *int
	}
	var moved row
	require.NoError(t, db.Raw(
		`SELECT bundle_id, discount_percent, original_price_cents FROM listings WHERE id = ?`, eligible).
		Scan(&moved).Error)
	require.NotNil(t, moved.BundleID)
	assert.Equal(t, bundleID.String(), *moved.BundleID)
	require.NotNil(t, moved.DiscountPercent)
	assert.Equal(t, 15, *moved.DiscountPercent)
	require.NotNil(t, moved.OriginalPriceCents)
	assert.Equal(t, 1000, *moved.OriginalPriceCents)

	var untouched row
	require.NoError(t, db.Raw(
		`SELECT bundle_id, discount_percent, original_price_cents FROM listings WHERE id = ?`, foreign).
		Scan(&untouched).Error)
	assert.Nil(t, untouched.DiscountPercent)
}

func TestAttachListingsEmptyInputIsNoOp(t *testing.T) {
	db := setupBundlesTestDB(t)
	repo := NewRepository(db)

	attached, err := repo.AttachListings(context.Background(), uuid.New(), uuid.New(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), attached)
}
