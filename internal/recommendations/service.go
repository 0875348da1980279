package recommendations

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

const (
	priceBandLowerFactor = 0.8
	priceBandUpperFactor = 1.2
)

// ServiceParams groups dependencies for the recommendations service.
type ServiceParams struct {
	Repo   Repository
	Engine config.EngineConfig
}

// Service selects similar listings with a deterministic recency backfill.
type Service interface {
	ForListing(ctx context.Context, listingID uuid.UUID, limit int) ([]models.Listing, error)
}

type service struct {
	repo         Repository
	defaultLimit int
}

// NewService builds a recommendations service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recommendations repo is required")
	}
	defaultLimit := params.Engine.RecommendationLimit
	if defaultLimit <= 0 {
		defaultLimit = 4
	}
	return &service{
		repo:         params.Repo,
		defaultLimit: defaultLimit,
	}, nil
}

// ForListing returns up to limit recommendations: a similarity set first
// (same category, campus and transaction type, price within the 0.8–1.2
// band), then a recency backfill. Both legs order by created_at DESC,
// id DESC, so the result is deterministic for a given data state.
func (s *service) ForListing(ctx context.Context, listingID uuid.UUID, limit int) ([]models.Listing, error) {
	if listingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	seed, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}

	minPrice := int(math.Floor(priceBandLowerFactor * float64(seed.PriceCents)))
	maxPrice := int(math.Ceil(priceBandUpperFactor * float64(seed.PriceCents)))

	primary, err := s.repo.SimilarListings(ctx, seed, minPrice, maxPrice, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query similar listings")
	}
	if len(primary) >= limit {
		return primary[:limit], nil
	}

	exclude := make([]uuid.UUID, 0, len(primary)+1)
	exclude = append(exclude, seed.ID)
	for _, listing := range primary {
		exclude = append(exclude, listing.ID)
	}

	backfill, err := s.repo.RecentListings(ctx, exclude, limit-len(primary))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query recent listings")
	}

	return append(primary, backfill...), nil
}
