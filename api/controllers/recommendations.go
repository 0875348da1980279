package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/recommendations"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

// ListingRecommendations returns similar listings with a recency backfill.
func ListingRecommendations(svc recommendations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listingID, err := pathUUID(chi.URLParam(r, "listingID"), "listing id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 20)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listings, err := svc.ForListing(ctx, listingID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, listings)
	}
}
