package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

type stubReportsRepo struct {
	listing    *models.Listing
	listingErr error
	created    *models.Report
}

func (s *stubReportsRepo) Create(ctx context.Context, report *models.Report) error {
	s.created = report
	return nil
}

func (s *stubReportsRepo) FindListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if s.listingErr != nil {
		return nil, s.listingErr
	}
	return s.listing, nil
}

type stubLimiter struct {
	limited bool
}

func (s *stubLimiter) IsLimited(ctx context.Context, key string, maxHits int, window time.Duration) (bool, error) {
	return s.limited, nil
}

func newReportsService(t *testing.T, repo Repository, limiter *stubLimiter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Limiter: limiter,
		Limits: config.RateLimitConfig{
			ReportWindow: time.Minute,
			ReportLimit:  3,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitReportPersists(t *testing.T) {
	repo := &stubReportsRepo{
		listing: &models.Listing{ID: uuid.New(), OwnerID: uuid.New()},
	}
	svc := newReportsService(t, repo, &stubLimiter{})

	report, err := svc.Submit(context.Background(), SubmitInput{
		ReporterID: uuid.New(),
		ListingID:  repo.listing.ID,
		Reason:     "counterfeit item",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Reason != "counterfeit item" {
		t.Fatalf("unexpected reason %q", report.Reason)
	}
	if repo.created == nil {
		t.Fatal("expected report to be persisted")
	}
}

func TestSubmitReportShortReason(t *testing.T) {
	svc := newReportsService(t, &stubReportsRepo{}, &stubLimiter{})

	_, err := svc.Submit(context.Background(), SubmitInput{
		ReporterID: uuid.New(),
		ListingID:  uuid.New(),
		Reason:     "ab",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitReportRateLimited(t *testing.T) {
	repo := &stubReportsRepo{
		listing: &models.Listing{ID: uuid.New()},
	}
	svc := newReportsService(t, repo, &stubLimiter{limited: true})

	_, err := svc.Submit(context.Background(), SubmitInput{
		ReporterID: uuid.New(),
		ListingID:  repo.listing.ID,
		Reason:     "spam listing",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("report must not be persisted when limited")
	}
}

func TestSubmitReportListingNotFound(t *testing.T) {
	repo := &stubReportsRepo{listingErr: gorm.ErrRecordNotFound}
	svc := newReportsService(t, repo, &stubLimiter{})

	_, err := svc.Submit(context.Background(), SubmitInput{
		ReporterID: uuid.New(),
		ListingID:  uuid.New(),
		Reason:     "broken images",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
