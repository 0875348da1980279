package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/reviews"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type mutualReviewPayload struct {
	TransactionID string  `json:"transaction_id" validate:"required,uuid"`
	Rating        int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       *string `json:"comment" validate:"omitempty,min=3"`
}

type genericReviewPayload struct {
	SellerID  string  `json:"seller_id" validate:"required,uuid"`
	ListingID *string `json:"listing_id" validate:"omitempty,uuid"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string `json:"comment" validate:"omitempty,min=3"`
}

// ReviewSubmitMutual records a transaction party's review of the counterparty.
func ReviewSubmitMutual(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reviewerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload mutualReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transactionID, err := uuid.Parse(payload.TransactionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction id"))
			return
		}

		review, err := svc.SubmitMutual(ctx, reviews.MutualInput{
			ReviewerID:    reviewerID,
			TransactionID: transactionID,
			Rating:        payload.Rating,
			Comment:       payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewSubmit records a generic seller review, optionally tied to a listing.
func ReviewSubmit(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reviewerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload genericReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sellerID, err := uuid.Parse(payload.SellerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id"))
			return
		}

		var listingID *uuid.UUID
		if payload.ListingID != nil {
			id, err := uuid.Parse(*payload.ListingID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid listing id"))
				return
			}
			listingID = &id
		}

		review, err := svc.Submit(ctx, reviews.GenericInput{
			ReviewerID: reviewerID,
			SellerID:   sellerID,
			ListingID:  listingID,
			Rating:     payload.Rating,
			Comment:    payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
