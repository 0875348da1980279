package sales

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

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	listings := `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  status TEXT NOT NULL DEFAULT 'AVAILABLE',
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(listings).Error)
	return db
}

func seedListingWithStatus(t *testing.T, db *gorm.DB, status enums.ListingStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO listings (id, status) VALUES (?, ?)`, id, status).Error)
	return id
}

func TestMarkListingSoldFromAvailable(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewRepository(db)
	listingID := seedListingWithStatus(t, db, enums.ListingStatusAvailable)

	rows, err := repo.MarkListingSold(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var status string
	require.NoError(t, db.Raw(`SELECT status FROM listings WHERE id = ?`, listingID).Scan(&status).Error)
	assert.Equal(t, string(enums.ListingStatusSold), status)
}

func TestMarkListingSoldFromReserved(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewRepository(db)
	listingID := seedListingWithStatus(t, db, enums.ListingStatusReserved)

	rows, err := repo.MarkListingSold(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestMarkListingSoldRefusesAlreadySold(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewRepository(db)
	listingID := seedListingWithStatus(t, db, enums.ListingStatusSold)

	rows, err := repo.MarkListingSold(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
