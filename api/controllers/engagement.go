package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/api/responses"
	"github.com/campusmkt/campusmkt-backend/api/validators"
	"github.com/campusmkt/campusmkt-backend/internal/engagement"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type togglePayload struct {
	Kind     string `json:"kind" validate:"required,oneof=saved_listing follow"`
	TargetID string `json:"target_id" validate:"required,uuid"`
}

// EngagementToggle flips a save or follow relation for the actor.
func EngagementToggle(svc engagement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload togglePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		targetID, err := uuid.Parse(payload.TargetID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target id"))
			return
		}

		if err := svc.Toggle(ctx, enums.RelationKind(payload.Kind), userID, targetID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// SavedListingsList returns the actor's saved listings, newest save first.
func SavedListingsList(svc engagement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListSaved(ctx, userID, strings.TrimSpace(r.URL.Query().Get("cursor")), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
