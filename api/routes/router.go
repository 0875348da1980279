package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusmkt/campusmkt-backend/api/controllers"
	"github.com/campusmkt/campusmkt-backend/api/middleware"
	"github.com/campusmkt/campusmkt-backend/internal/bundles"
	"github.com/campusmkt/campusmkt-backend/internal/engagement"
	"github.com/campusmkt/campusmkt-backend/internal/listings"
	"github.com/campusmkt/campusmkt-backend/internal/offers"
	"github.com/campusmkt/campusmkt-backend/internal/recommendations"
	"github.com/campusmkt/campusmkt-backend/internal/reports"
	"github.com/campusmkt/campusmkt-backend/internal/reviews"
	"github.com/campusmkt/campusmkt-backend/internal/sales"
	"github.com/campusmkt/campusmkt-backend/internal/views"
	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	listingsService listings.Service,
	offersService offers.Service,
	salesService sales.Service,
	reviewsService reviews.Service,
	engagementService engagement.Service,
	viewsService views.Service,
	recommendationsService recommendations.Service,
	bundlesService bundles.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Browsing the feed, reading a listing and its recommendations need no
	// account; everything that writes does.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", controllers.ListingBrowse(listingsService, logg))
		r.Get("/listings/{listingID}", controllers.ListingGet(listingsService, logg))
		r.Get("/listings/{listingID}/recommendations", controllers.ListingRecommendations(recommendationsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Post("/listings", controllers.ListingCreate(listingsService, logg))
			r.Post("/listings/{listingID}/views", controllers.ListingRecordView(viewsService, logg))
			r.Post("/listings/{listingID}/reviews-toggle", controllers.ListingToggleReviews(listingsService, logg))
			r.Post("/listings/{listingID}/mark-sold", controllers.ListingMarkSold(salesService, logg))
			r.Post("/listings/{listingID}/reports", controllers.ReportSubmit(reportsService, logg))

			r.Post("/offers", controllers.OfferSubmit(offersService, logg))
			r.Post("/offers/{offerID}/respond", controllers.OfferRespond(offersService, logg))

			r.Post("/reviews", controllers.ReviewSubmit(reviewsService, logg))
			r.Post("/reviews/mutual", controllers.ReviewSubmitMutual(reviewsService, logg))

			r.Post("/engagement/toggle", controllers.EngagementToggle(engagementService, logg))
			r.Get("/me/saved-listings", controllers.SavedListingsList(engagementService, logg))

			r.Post("/bundles", controllers.BundleCreate(bundlesService, logg))
			r.Post("/bundles/quote", controllers.BundleQuote(bundlesService, logg))
			r.Post("/bundles/{bundleID}/attach", controllers.BundleAttach(bundlesService, logg))
		})
	})

	return r
}
