package listings

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

// ServiceParams groups dependencies for the listings service.
type ServiceParams struct {
	Repo Repository
}

// Service exposes business rules for listing management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Browse(ctx context.Context, filter BrowseFilter) (BrowsePage, error)
	ToggleReviewsDisabled(ctx context.Context, ownerID, listingID uuid.UUID) (bool, error)
}

type service struct {
	repo Repository
}

// NewService builds a listings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listings repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Create validates and persists a new listing in AVAILABLE state.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Listing, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	options := make(pq.StringArray, 0, len(input.DeliveryOptions))
	for _, raw := range input.DeliveryOptions {
		option, err := enums.ParseDeliveryOption(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery option").
				WithDetails(map[string]any{"delivery_option": raw})
		}
		options = append(options, option.String())
	}

	listing := &models.Listing{
		OwnerID:          input.OwnerID,
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		PriceCents:       input.PriceCents,
		Category:         strings.TrimSpace(input.Category),
		Condition:        strings.TrimSpace(input.Condition),
		Campus:           strings.TrimSpace(input.Campus),
		TransactionType:  input.TransactionType,
		DeliveryOptions:  options,
		RentalPeriodDays: input.RentalPeriodDays,
		Status:           enums.ListingStatusAvailable,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist listing")
	}
	return listing, nil
}

// Get loads a single listing by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	return listing, nil
}

// Browse returns the filtered public feed, newest first.
func (s *service) Browse(ctx context.Context, filter BrowseFilter) (BrowsePage, error) {
	if filter.TransactionType != "" {
		if _, err := enums.ParseTransactionType(filter.TransactionType); err != nil {
			return BrowsePage{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type filter")
		}
	}
	page, err := s.repo.Browse(ctx, filter)
	if err != nil {
		return BrowsePage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "browse listings")
	}
	return page, nil
}

// ToggleReviewsDisabled flips the owner-only review gate and returns the new value.
func (s *service) ToggleReviewsDisabled(ctx context.Context, ownerID, listingID uuid.UUID) (bool, error) {
	if ownerID == uuid.Nil || listingID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "owner id and listing id are required")
	}

	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if listing.OwnerID != ownerID {
		return false, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner may toggle reviews")
	}

	newValue, err := s.repo.FlipReviewsDisabled(ctx, listingID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle reviews flag")
	}
	return newValue, nil
}

func validateCreateInput(input CreateInput) error {
	details := map[string]string{}

	if input.OwnerID == uuid.Nil {
		details["owner_id"] = "is required"
	}
	if len(strings.TrimSpace(input.Title)) < 4 {
		details["title"] = "must be at least 4 characters"
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		details["description"] = "must be at least 10 characters"
	}
	if input.PriceCents < 0 {
		details["price_cents"] = "must not be negative"
	}
	if len(strings.TrimSpace(input.Category)) < 2 {
		details["category"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(input.Condition)) < 2 {
		details["condition"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(input.Campus)) < 2 {
		details["campus"] = "must be at least 2 characters"
	}
	if !input.TransactionType.IsValid() {
		details["transaction_type"] = "must be SELL or RENT"
	}
	if input.RentalPeriodDays != nil && *input.RentalPeriodDays <= 0 {
		details["rental_period_days"] = "must be positive"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid listing").WithDetails(details)
	}
	return nil
}
