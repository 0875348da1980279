package views

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupViewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	listingViews := `
CREATE TABLE IF NOT EXISTS listing_views (
  listing_id TEXT NOT NULL,
  viewer_id TEXT NOT NULL,
  viewed_at DATETIME NOT NULL,
  PRIMARY KEY (listing_id, viewer_id)
);`
	listings := `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  view_count INTEGER NOT NULL DEFAULT 0
);`
	require.NoError(t, db.Exec(listingViews).Error)
	require.NoError(t, db.Exec(listings).Error)
	return db
}

func TestUpsertViewCountsFreshVisit(t *testing.T) {
	db := setupViewsTestDB(t)
	repo := NewRepository(db)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows, err := repo.UpsertView(context.Background(), uuid.New(), uuid.New(), now, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestUpsertViewSkipsRevisitInsideWindow(t *testing.T) {
	db := setupViewsTestDB(t)
	repo := NewRepository(db)
	listingID, viewerID := uuid.New(), uuid.New()

	first := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows, err := repo.UpsertView(context.Background(), listingID, viewerID, first, first.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	again := first.Add(time.Hour)
	rows, err = repo.UpsertView(context.Background(), listingID, viewerID, again, again.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestUpsertViewCountsRevisitAfterWindow(t *testing.T) {
	db := setupViewsTestDB(t)
	repo := NewRepository(db)
	listingID, viewerID := uuid.New(), uuid.New()

	first := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows, err := repo.UpsertView(context.Background(), listingID, viewerID, first, first.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	later := first.Add(25 * time.Hour)
	rows, err = repo.UpsertView(context.Background(), listingID, viewerID, later, later.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A third visit right after the refresh is back inside the window.
	rows, err = repo.UpsertView(context.Background(), listingID, viewerID, later.Add(time.Minute), later.Add(time.Minute).Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestIncrementViewCountBumpsCounter(t *testing.T) {
	db := setupViewsTestDB(t)
	repo := NewRepository(db)
	listingID := uuid.New()

	require.NoError(t, db.Exec(`INSERT INTO listings (id, view_count) VALUES (?, 0)`, listingID).Error)
	require.NoError(t, repo.IncrementViewCount(context.Background(), listingID))
	require.NoError(t, repo.IncrementViewCount(context.Background(), listingID))

	var count int
	require.NoError(t, db.Raw(`SELECT view_count FROM listings WHERE id = ?`, listingID).Scan(&count).Error)
	assert.Equal(t, 2, count)
}
