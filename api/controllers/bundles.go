package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/bundles"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type createBundlePayload struct {
	Title           string   `json:"title" validate:"required,min=3"`
	Description     *string  `json:"description" validate:"omitempty,min=3"`
	DiscountPercent int      `json:"discount_percent" validate:"gte=0,lte=100"`
	ListingIDs      []string `json:"listing_ids" validate:"required,min=1,dive,uuid"`
}

type attachBundlePayload struct {
	ListingIDs []string `json:"listing_ids" validate:"required,min=1,dive,uuid"`
}

type quoteBundlePayload struct {
	DiscountPercent int      `json:"discount_percent" validate:"gte=0,lte=100"`
	ListingIDs      []string `json:"listing_ids" validate:"required,min=1,dive,uuid"`
}

func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid listing id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BundleCreate creates a bundle and attaches the eligible listings.
func BundleCreate(svc bundles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ownerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createBundlePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingIDs, err := parseUUIDList(payload.ListingIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Create(ctx, bundles.CreateInput{
			OwnerID:         ownerID,
			Title:           payload.Title,
			Description:     payload.Description,
			DiscountPercent: payload.DiscountPercent,
			ListingIDs:      listingIDs,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// BundleAttach binds more listings to an existing bundle.
func BundleAttach(svc bundles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ownerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		bundleID, err := pathUUID(chi.URLParam(r, "bundleID"), "bundle id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload attachBundlePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingIDs, err := parseUUIDList(payload.ListingIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		attached, err := svc.Attach(ctx, ownerID, bundleID, listingIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"attached_count": attached})
	}
}

// BundleQuote prices a hypothetical bundle without persisting anything.
func BundleQuote(svc bundles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload quoteBundlePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingIDs, err := parseUUIDList(payload.ListingIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		total, err := svc.Quote(ctx, listingIDs, payload.DiscountPercent)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"total_cents": total})
	}
}
