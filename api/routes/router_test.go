package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/internal/bundles"
	"github.com/campusmkt/campusmkt-backend/internal/engagement"
	"github.com/campusmkt/campusmkt-backend/internal/listings"
	"github.com/campusmkt/campusmkt-backend/internal/offers"
	"github.com/campusmkt/campusmkt-backend/internal/reports"
	"github.com/campusmkt/campusmkt-backend/internal/reviews"
	pkgAuth "github.com/campusmkt/campusmkt-backend/pkg/auth"
	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubListingsService struct{}

func (stubListingsService) Create(ctx context.Context, input listings.CreateInput) (*models.Listing, error) {
	return &models.Listing{}, nil
}

func (stubListingsService) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return &models.Listing{ID: id}, nil
}

func (stubListingsService) Browse(ctx context.Context, filter listings.BrowseFilter) (listings.BrowsePage, error) {
	return listings.BrowsePage{}, nil
}

func (stubListingsService) ToggleReviewsDisabled(ctx context.Context, ownerID, listingID uuid.UUID) (bool, error) {
	return true, nil
}

type stubOffersService struct{}

func (stubOffersService) Submit(ctx context.Context, input offers.SubmitInput) (*models.Offer, error) {
	return &models.Offer{}, nil
}

func (stubOffersService) Respond(ctx context.Context, sellerID, offerID uuid.UUID, decision enums.OfferStatus) (*models.Offer, error) {
	return &models.Offer{}, nil
}

type stubSalesService struct{}

func (stubSalesService) MarkSold(ctx context.Context, ownerID, listingID, buyerID uuid.UUID) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

type stubReviewsService struct{}

func (stubReviewsService) SubmitMutual(ctx context.Context, input reviews.MutualInput) (*models.Review, error) {
	return &models.Review{}, nil
}

func (stubReviewsService) Submit(ctx context.Context, input reviews.GenericInput) (*models.Review, error) {
	return &models.Review{}, nil
}

type stubEngagementService struct{}

func (stubEngagementService) Toggle(ctx context.Context, kind enums.RelationKind, actorID, targetID uuid.UUID) error {
	return nil
}

func (stubEngagementService) ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (engagement.SavedPage, error) {
	return engagement.SavedPage{}, nil
}

type stubViewsService struct{}

func (stubViewsService) Record(ctx context.Context, listingID, viewerID uuid.UUID) error {
	return nil
}

type stubRecommendationsService struct{}

func (stubRecommendationsService) ForListing(ctx context.Context, listingID uuid.UUID, limit int) ([]models.Listing, error) {
	return []models.Listing{}, nil
}

type stubBundlesService struct{}

func (stubBundlesService) Create(ctx context.Context, input bundles.CreateInput) (bundles.CreateResult, error) {
	return bundles.CreateResult{Bundle: &models.Bundle{}}, nil
}

func (stubBundlesService) Attach(ctx context.Context, ownerID, bundleID uuid.UUID, listingIDs []uuid.UUID) (int64, error) {
	return int64(len(listingIDs)), nil
}

func (stubBundlesService) ComputeTotal(records []models.Listing, discountPercent int) (int, error) {
	return 0, nil
}

func (stubBundlesService) Quote(ctx context.Context, listingIDs []uuid.UUID, discountPercent int) (int, error) {
	return 0, nil
}

type stubReportsService struct{}

func (stubReportsService) Submit(ctx context.Context, input reports.SubmitInput) (*models.Report, error) {
	return &models.Report{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubListingsService{},
		stubOffersService{},
		stubSalesService{},
		stubReviewsService{},
		stubEngagementService{},
		stubViewsService{},
		stubRecommendationsService{},
		stubBundlesService{},
		stubReportsService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}
}

func TestBrowseIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public browse got %d", resp.Code)
	}
}

func TestRecommendationsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+uuid.NewString()+"/recommendations", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public recommendations got %d", resp.Code)
	}
}

func TestCreateListingRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"title":"Desk lamp","description":"A perfectly fine lamp.","price_cents":1500,"category":"furniture","condition":"used","campus":"north","transaction_type":"SELL"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCreateListingSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"title":"Desk lamp","description":"A perfectly fine lamp.","price_cents":1500,"category":"furniture","condition":"used","campus":"north","transaction_type":"SELL"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for authed create got %d", resp.Code)
	}
}

func TestOfferSubmitRejectsBadJSON(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestOfferRespondRequiresJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/"+uuid.NewString()+"/respond", strings.NewReader(`{"decision":"ACCEPTED"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestSavedListingsRequireJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/me/saved-listings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/me/saved-listings", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed list got %d", resp.Code)
	}
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
