package bundles

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the fields a seller submits for a new bundle.
type CreateInput struct {
	OwnerID         uuid.UUID
	Title           string
	Description     *string
	DiscountPercent int
	ListingIDs      []uuid.UUID
}

// CreateResult reports the bundle and how many listings actually attached.
type CreateResult struct {
	Bundle        *models.Bundle `json:"bundle"`
	AttachedCount int64          `json:"attached_count"`
}

// ServiceParams groups dependencies for the bundles service.
type ServiceParams struct {
	Repo Repository
	Tx   txRunner
}

// Service manages bundle creation, attachment and pricing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (CreateResult, error)
	Attach(ctx context.Context, ownerID, bundleID uuid.UUID, listingIDs []uuid.UUID) (int64, error)
	ComputeTotal(listings []models.Listing, discountPercent int) (int, error)
	Quote(ctx context.Context, listingIDs []uuid.UUID, discountPercent int) (int, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a bundles service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundles repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		repo: params.Repo,
		tx:   params.Tx,
	}, nil
}

// ComputeTotal discounts the summed listing prices. The sum is discounted as
// a whole, then rounded half-up to whole cents.
func (s *service) ComputeTotal(listings []models.Listing, discountPercent int) (int, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}

	sum := decimal.Zero
	for _, listing := range listings {
		sum = sum.Add(decimal.NewFromInt(int64(listing.PriceCents)))
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(discountPercent)).Div(decimal.NewFromInt(100)))
	total := sum.Mul(factor).Round(0)
	return int(total.IntPart()), nil
}

// Quote loads the named listings and prices them as a bundle without
// persisting anything.
func (s *service) Quote(ctx context.Context, listingIDs []uuid.UUID, discountPercent int) (int, error) {
	if len(listingIDs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one listing is required")
	}
	records, err := s.repo.FindListingsByIDs(ctx, listingIDs)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listings")
	}
	return s.ComputeTotal(records, discountPercent)
}

// Create validates, creates the bundle, and attaches the eligible listings in
// one transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	if input.OwnerID == uuid.Nil {
		return CreateResult{}, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if len(strings.TrimSpace(input.Title)) < 3 {
		return CreateResult{}, pkgerrors.New(pkgerrors.CodeValidation, "bundle title must be at least 3 characters")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return CreateResult{}, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}
	if len(input.ListingIDs) == 0 {
		return CreateResult{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one listing is required")
	}

	bundle := &models.Bundle{
		OwnerID:         input.OwnerID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
	}

	var attached int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.CreateBundle(ctx, bundle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist bundle")
		}

		count, err := repo.AttachListings(ctx, bundle.ID, input.OwnerID, input.ListingIDs, input.DiscountPercent)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach listings")
		}
		attached = count
		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{
		Bundle:        bundle,
		AttachedCount: attached,
	}, nil
}

// Attach binds additional listings to an existing bundle. Ineligible rows
// are silently skipped; the returned count says how many actually moved.
func (s *service) Attach(ctx context.Context, ownerID, bundleID uuid.UUID, listingIDs []uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil || bundleID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "owner id and bundle id are required")
	}
	if len(listingIDs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one listing is required")
	}

	bundle, err := s.repo.FindBundle(ctx, bundleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "bundle not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bundle")
	}
	if bundle.OwnerID != ownerID {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "only the bundle owner may attach listings")
	}

	attached, err := s.repo.AttachListings(ctx, bundleID, ownerID, listingIDs, bundle.DiscountPercent)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach listings")
	}
	return attached, nil
}
