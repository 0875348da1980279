package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/internal/views"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

// ListingRecordView counts a deduplicated visit by the authenticated viewer.
// The service swallows storage failures, so this always answers 200 once the
// inputs parse.
func ListingRecordView(svc views.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		viewerID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listingID, err := pathUUID(chi.URLParam(r, "listingID"), "listing id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Record(ctx, listingID, viewerID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}
