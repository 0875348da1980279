package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/reports"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type submitReportPayload struct {
	Reason  string  `json:"reason" validate:"required,min=3"`
	Details *string `json:"details" validate:"omitempty,min=3"`
}

// ReportSubmit files a report against a listing.
func ReportSubmit(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reporterID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingID, err := pathUUID(chi.URLParam(r, "listingID"), "listing id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload submitReportPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := svc.Submit(ctx, reports.SubmitInput{
			ReporterID: reporterID,
			ListingID:  listingID,
			Reason:     payload.Reason,
			Details:    payload.Details,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, report)
	}
}
