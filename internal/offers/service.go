package offers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/metrics"
	"github.com/campusmkt/campusmkt-backend/pkg/ratelimit"
)

const submitOfferAction = "submit_offer"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput carries a buyer's proposed price for a listing.
type SubmitInput struct {
	BuyerID     uuid.UUID
	ListingID   uuid.UUID
	AmountCents int
	Message     *string
}

// ServiceParams groups dependencies for the offers service.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Limiter ratelimit.Limiter
	Limits  config.RateLimitConfig
	Metrics *metrics.OperationMetrics
}

// Service exposes the negotiation rules for buyer offers.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Offer, error)
	Respond(ctx context.Context, sellerID, offerID uuid.UUID, decision enums.OfferStatus) (*models.Offer, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	limiter ratelimit.Limiter
	limits  config.RateLimitConfig
	metrics *metrics.OperationMetrics
}

// NewService builds an offers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offers repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		limiter: params.Limiter,
		limits:  params.Limits,
		metrics: params.Metrics,
	}, nil
}

// Submit creates a PENDING offer. The listing itself is never touched here;
// reservation only happens when the seller accepts.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Offer, error) {
	offer, err := s.submit(ctx, input)
	if err != nil {
		s.metrics.IncFailure(submitOfferAction, string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess(submitOfferAction)
	return offer, nil
}

func (s *service) submit(ctx context.Context, input SubmitInput) (*models.Offer, error) {
	if input.BuyerID == uuid.Nil || input.ListingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id and listing id are required")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer amount must be positive")
	}
	if input.Message != nil && len(strings.TrimSpace(*input.Message)) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer message must be at least 2 characters")
	}

	listing, err := s.repo.FindListing(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if listing.OwnerID == input.BuyerID {
		return nil, pkgerrors.New(pkgerrors.CodeSelfAction, "cannot make an offer on your own listing")
	}

	limited, err := s.limiter.IsLimited(ctx, ratelimit.Key(input.BuyerID.String(), submitOfferAction), s.limits.OfferLimit, s.limits.OfferWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check offer rate limit")
	}
	if limited {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many offers, slow down")
	}

	offer := &models.Offer{
		ListingID:   input.ListingID,
		BuyerID:     input.BuyerID,
		SellerID:    listing.OwnerID,
		AmountCents: input.AmountCents,
		Message:     input.Message,
		Status:      enums.OfferStatusPending,
	}
	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist offer")
	}
	return offer, nil
}

// Respond records the seller's one-shot decision. Accepting also reserves the
// listing in the same transaction; sibling offers stay PENDING, and the
// eventual sale buyer is decided independently at finalization time.
func (s *service) Respond(ctx context.Context, sellerID, offerID uuid.UUID, decision enums.OfferStatus) (*models.Offer, error) {
	offer, err := s.respond(ctx, sellerID, offerID, decision)
	if err != nil {
		s.metrics.IncFailure("respond_offer", string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess("respond_offer")
	return offer, nil
}

func (s *service) respond(ctx context.Context, sellerID, offerID uuid.UUID, decision enums.OfferStatus) (*models.Offer, error) {
	if sellerID == uuid.Nil || offerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id and offer id are required")
	}
	if !decision.IsDecision() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be ACCEPTED or DECLINED")
	}

	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	if offer.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the seller may respond to this offer")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		rows, err := repo.DecideOffer(ctx, offerID, decision)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record offer decision")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "offer has already been decided")
		}

		if decision == enums.OfferStatusAccepted {
			if _, err := repo.ReserveListing(ctx, offer.ListingID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve listing")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	offer.Status = decision
	return offer, nil
}
