package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/offers"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type submitOfferPayload struct {
	ListingID   string  `json:"listing_id" validate:"required,uuid"`
	AmountCents int     `json:"amount_cents" validate:"required,gt=0"`
	Message     *string `json:"message" validate:"omitempty,min=2"`
}

type respondOfferPayload struct {
	Decision string `json:"decision" validate:"required,oneof=ACCEPTED DECLINED"`
}

// OfferSubmit creates a PENDING offer from the authenticated buyer.
func OfferSubmit(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		buyerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload submitOfferPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingID, err := uuid.Parse(payload.ListingID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid listing id"))
			return
		}

		offer, err := svc.Submit(ctx, offers.SubmitInput{
			BuyerID:     buyerID,
			ListingID:   listingID,
			AmountCents: payload.AmountCents,
			Message:     payload.Message,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// OfferRespond records the seller's one-shot decision.
func OfferRespond(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sellerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		offerID, err := pathUUID(chi.URLParam(r, "offerID"), "offer id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload respondOfferPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		offer, err := svc.Respond(ctx, sellerID, offerID, enums.OfferStatus(payload.Decision))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}
