package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/metrics"
	"github.com/campusmkt/campusmkt-backend/pkg/ratelimit"
)

const submitReviewAction = "submit_review"

// MutualInput is a transaction-bound review request.
type MutualInput struct {
	ReviewerID    uuid.UUID
	TransactionID uuid.UUID
	Rating        int
	Comment       *string
}

// GenericInput is a direct listing/seller review request.
type GenericInput struct {
	ReviewerID uuid.UUID
	SellerID   uuid.UUID
	ListingID  *uuid.UUID
	Rating     int
	Comment    *string
}

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	Repo    Repository
	Limiter ratelimit.Limiter
	Limits  config.RateLimitConfig
	Metrics *metrics.OperationMetrics
}

// Service enforces the review gate.
type Service interface {
	SubmitMutual(ctx context.Context, input MutualInput) (*models.Review, error)
	Submit(ctx context.Context, input GenericInput) (*models.Review, error)
}

type service struct {
	repo    Repository
	limiter ratelimit.Limiter
	limits  config.RateLimitConfig
	metrics *metrics.OperationMetrics
}

// NewService builds a reviews service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviews repo is required")
	}
	if params.Limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	return &service{
		repo:    params.Repo,
		limiter: params.Limiter,
		limits:  params.Limits,
		metrics: params.Metrics,
	}, nil
}

// SubmitMutual records a transaction party's review of the counterparty.
// The role is derived from which side the reviewer sat on; the duplicate
// guard is the partial unique index on (transaction_id, reviewer_id).
func (s *service) SubmitMutual(ctx context.Context, input MutualInput) (*models.Review, error) {
	review, err := s.submitMutual(ctx, input)
	if err != nil {
		s.metrics.IncFailure("submit_mutual_review", string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess("submit_mutual_review")
	return review, nil
}

func (s *service) submitMutual(ctx context.Context, input MutualInput) (*models.Review, error) {
	if input.ReviewerID == uuid.Nil || input.TransactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer id and transaction id are required")
	}
	if err := validateRatingAndComment(input.Rating, input.Comment); err != nil {
		return nil, err
	}

	transaction, err := s.repo.FindTransaction(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}

	var role enums.ReviewRole
	var subjectID uuid.UUID
	switch input.ReviewerID {
	case transaction.BuyerID:
		role = enums.ReviewRoleBuyer
		subjectID = transaction.SellerID
	case transaction.SellerID:
		role = enums.ReviewRoleSeller
		subjectID = transaction.BuyerID
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only transaction parties may review")
	}

	review := &models.Review{
		Rating:        input.Rating,
		Comment:       input.Comment,
		ReviewerID:    input.ReviewerID,
		SubjectID:     subjectID,
		ListingID:     &transaction.ListingID,
		TransactionID: &transaction.ID,
		Role:          &role,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "ux_reviews_transaction_reviewer") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "you have already reviewed this transaction")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist review")
	}
	return review, nil
}

// Submit records a generic review of a seller, optionally tied to a listing.
// Multiple generic reviews by the same reviewer are allowed; only the mutual
// path carries a uniqueness guarantee.
func (s *service) Submit(ctx context.Context, input GenericInput) (*models.Review, error) {
	review, err := s.submit(ctx, input)
	if err != nil {
		s.metrics.IncFailure(submitReviewAction, string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess(submitReviewAction)
	return review, nil
}

func (s *service) submit(ctx context.Context, input GenericInput) (*models.Review, error) {
	if input.ReviewerID == uuid.Nil || input.SellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer id and seller id are required")
	}
	if input.ReviewerID == input.SellerID {
		return nil, pkgerrors.New(pkgerrors.CodeSelfAction, "cannot review yourself")
	}
	if err := validateRatingAndComment(input.Rating, input.Comment); err != nil {
		return nil, err
	}

	if input.ListingID != nil {
		listing, err := s.repo.FindListing(ctx, *input.ListingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
		}
		if listing.OwnerID != input.SellerID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing does not belong to the named seller")
		}
		if listing.ReviewsDisabled {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviews are disabled for this listing")
		}
	}

	limited, err := s.limiter.IsLimited(ctx, ratelimit.Key(input.ReviewerID.String(), submitReviewAction), s.limits.ReviewLimit, s.limits.ReviewWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check review rate limit")
	}
	if limited {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many reviews, slow down")
	}

	review := &models.Review{
		Rating:     input.Rating,
		Comment:    input.Comment,
		ReviewerID: input.ReviewerID,
		SubjectID:  input.SellerID,
		ListingID:  input.ListingID,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist review")
	}
	return review, nil
}

func validateRatingAndComment(rating int, comment *string) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if comment != nil && len(strings.TrimSpace(*comment)) < 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment must be at least 3 characters")
	}
	return nil
}
