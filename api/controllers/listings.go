package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/listings"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
	"github.com/campusmkt/campusmkt-backend/pkg/pagination"
)

type createListingPayload struct {
	Title            string   `json:"title" validate:"required,min=4"`
	Description      string   `json:"description" validate:"required,min=10"`
	PriceCents       int      `json:"price_cents" validate:"gte=0"`
	Category         string   `json:"category" validate:"required,min=2"`
	Condition        string   `json:"condition" validate:"required,min=2"`
	Campus           string   `json:"campus" validate:"required,min=2"`
	TransactionType  string   `json:"transaction_type" validate:"required,oneof=SELL RENT"`
	DeliveryOptions  []string `json:"delivery_options"`
	RentalPeriodDays *int     `json:"rental_period_days" validate:"omitempty,gt=0"`
}

// ListingCreate posts a new listing for the authenticated seller.
func ListingCreate(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ownerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createListingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listing, err := svc.Create(ctx, listings.CreateInput{
			OwnerID:          ownerID,
			Title:            payload.Title,
			Description:      payload.Description,
			PriceCents:       payload.PriceCents,
			Category:         payload.Category,
			Condition:        payload.Condition,
			Campus:           payload.Campus,
			TransactionType:  enums.TransactionType(payload.TransactionType),
			DeliveryOptions:  payload.DeliveryOptions,
			RentalPeriodDays: payload.RentalPeriodDays,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

// ListingGet returns a single listing.
func ListingGet(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := pathUUID(chi.URLParam(r, "listingID"), "listing id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listing, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

// ListingBrowse returns the filtered public feed.
func ListingBrowse(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.Browse(ctx, listings.BrowseFilter{
			Campus:          strings.TrimSpace(r.URL.Query().Get("campus")),
			Category:        strings.TrimSpace(r.URL.Query().Get("category")),
			TransactionType: strings.TrimSpace(r.URL.Query().Get("transaction_type")),
			Limit:           limit,
			Cursor:          strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ListingToggleReviews flips the owner-only reviews-disabled flag.
func ListingToggleReviews(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listings service unavailable"))
			return
		}

		ownerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingID, err := pathUUID(chi.URLParam(r, "listingID"), "listing id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		disabled, err := svc.ToggleReviewsDisabled(ctx, ownerID, listingID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"reviews_disabled": disabled})
	}
}
