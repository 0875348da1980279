package engagement

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

// ServiceParams groups dependencies for the engagement service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

// Service manages the binary engagement relations (saves and follows).
type Service interface {
	Toggle(ctx context.Context, kind enums.RelationKind, actorID, targetID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedPage, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds an engagement service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "engagement repo is required")
	}
	return &service{
		repo: params.Repo,
		logg: params.Logger,
	}, nil
}

// Toggle flips the relation. Self-targets are a silent no-op, and storage
// failures degrade to a no-op as well: a lost save must never break the
// page the user is on.
func (s *service) Toggle(ctx context.Context, kind enums.RelationKind, actorID, targetID uuid.UUID) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown relation kind")
	}
	if actorID == uuid.Nil || targetID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id and target id are required")
	}
	if actorID == targetID {
		return nil
	}

	var err error
	switch kind {
	case enums.RelationKindSavedListing:
		err = s.repo.ToggleSavedListing(ctx, actorID, targetID)
	case enums.RelationKindFollow:
		err = s.repo.ToggleFollow(ctx, actorID, targetID)
	}
	if err != nil && s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"relation_kind": kind.String(),
			"actor_id":      actorID.String(),
			"target_id":     targetID.String(),
			"error":         err.Error(),
		})
		s.logg.Warn(ctx, "engagement toggle dropped")
	}
	return nil
}

// ListSaved returns the actor's saved listings, most recent save first.
func (s *service) ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedPage, error) {
	if userID == uuid.Nil {
		return SavedPage{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	page, err := s.repo.ListSaved(ctx, userID, cursor, limit)
	if err != nil {
		return SavedPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved listings")
	}
	return page, nil
}
