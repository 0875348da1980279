package views

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the views service.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Engine config.EngineConfig
	Logger *logger.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Service records deduplicated listing views.
type Service interface {
	Record(ctx context.Context, listingID, viewerID uuid.UUID) error
}

type service struct {
	repo   Repository
	tx     txRunner
	window time.Duration
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds a views service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "views repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	window := params.Engine.ViewDedupWindow
	if window <= 0 {
		window = 24 * time.Hour
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:   params.Repo,
		tx:     params.Tx,
		window: window,
		logg:   params.Logger,
		now:    now,
	}, nil
}

// Record counts at most one visit per viewer per window. Owner self-views
// never count. Any failure degrades to a silent no-op: view counting must
// never break the listing page it rides on.
func (s *service) Record(ctx context.Context, listingID, viewerID uuid.UUID) error {
	if listingID == uuid.Nil || viewerID == uuid.Nil {
		return nil
	}

	if err := s.record(ctx, listingID, viewerID); err != nil && s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"listing_id": listingID.String(),
			"viewer_id":  viewerID.String(),
			"error":      err.Error(),
		})
		s.logg.Warn(ctx, "view recording dropped")
	}
	return nil
}

func (s *service) record(ctx context.Context, listingID, viewerID uuid.UUID) error {
	listing, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID == viewerID {
		return nil
	}

	now := s.now().UTC()
	cutoff := now.Add(-s.window)

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		rows, err := repo.UpsertView(ctx, listingID, viewerID, now, cutoff)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Inside the dedup window; the visit does not count.
			return nil
		}
		return repo.IncrementViewCount(ctx, listingID)
	})
}
