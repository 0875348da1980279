package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
)

type stubViewsRepo struct {
	listing         *models.Listing
	listingErr      error
	upsertRows      int64
	upsertErr       error
	upsertCalled    bool
	lastCutoff      time.Time
	incrementCalled bool
	incrementErr    error
}

func (s *stubViewsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubViewsRepo) FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if s.listingErr != nil {
		return nil, s.listingErr
	}
	return s.listing, nil
}

func (s *stubViewsRepo) UpsertView(ctx context.Context, listingID, viewerID uuid.UUID, now, cutoff time.Time) (int64, error) {
	s.upsertCalled = true
	s.lastCutoff = cutoff
	return s.upsertRows, s.upsertErr
}

func (s *stubViewsRepo) IncrementViewCount(ctx context.Context, listingID uuid.UUID) error {
	s.incrementCalled = true
	return s.incrementErr
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newViewsService(t *testing.T, repo Repository, now func() time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     stubTxRunner{},
		Engine: config.EngineConfig{ViewDedupWindow: 24 * time.Hour},
		Now:    now,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRecordFreshViewIncrements(t *testing.T) {
	repo := &stubViewsRepo{
		listing:    &models.Listing{ID: uuid.New(), OwnerID: uuid.New()},
		upsertRows: 1,
	}
	svc := newViewsService(t, repo, nil)

	if err := svc.Record(context.Background(), repo.listing.ID, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.upsertCalled || !repo.incrementCalled {
		t.Fatal("fresh view must upsert and increment")
	}
}

func TestRecordInsideWindowSkipsIncrement(t *testing.T) {
	repo := &stubViewsRepo{
		listing:    &models.Listing{ID: uuid.New(), OwnerID: uuid.New()},
		upsertRows: 0,
	}
	svc := newViewsService(t, repo, nil)

	if err := svc.Record(context.Background(), repo.listing.ID, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.incrementCalled {
		t.Fatal("in-window view must not increment")
	}
}

func TestRecordOwnerViewIsNoOp(t *testing.T) {
	ownerID := uuid.New()
	repo := &stubViewsRepo{
		listing: &models.Listing{ID: uuid.New(), OwnerID: ownerID},
	}
	svc := newViewsService(t, repo, nil)

	if err := svc.Record(context.Background(), repo.listing.ID, ownerID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.upsertCalled {
		t.Fatal("owner views must never reach storage")
	}
}

func TestRecordSwallowsStorageFailure(t *testing.T) {
	repo := &stubViewsRepo{
		listing:   &models.Listing{ID: uuid.New(), OwnerID: uuid.New()},
		upsertErr: errors.New("connection refused"),
	}
	svc := newViewsService(t, repo, nil)

	if err := svc.Record(context.Background(), repo.listing.ID, uuid.New()); err != nil {
		t.Fatalf("storage failure must degrade to no-op, got %v", err)
	}
}

func TestRecordMissingListingIsNoOp(t *testing.T) {
	repo := &stubViewsRepo{listingErr: gorm.ErrRecordNotFound}
	svc := newViewsService(t, repo, nil)

	if err := svc.Record(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("missing listing must degrade to no-op, got %v", err)
	}
}

func TestRecordCutoffUsesConfiguredWindow(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubViewsRepo{
		listing:    &models.Listing{ID: uuid.New(), OwnerID: uuid.New()},
		upsertRows: 1,
	}
	svc := newViewsService(t, repo, func() time.Time { return fixed })

	if err := svc.Record(context.Background(), repo.listing.ID, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := fixed.Add(-24 * time.Hour)
	if !repo.lastCutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, repo.lastCutoff)
	}
}
