package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/db"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/metrics"
)

const markSoldAction = "mark_sold"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the sales service.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Metrics *metrics.OperationMetrics
}

// Service finalizes sales. Which buyer the owner names is deliberately
// independent of any accepted offer; off-platform deals are first-class.
type Service interface {
	MarkSold(ctx context.Context, ownerID, listingID, buyerID uuid.UUID) (*models.Transaction, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OperationMetrics
}

// NewService builds a sales service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		metrics: params.Metrics,
	}, nil
}

// MarkSold finalizes a sale: listing to SOLD and the transaction row insert
// commit together or not at all. There is no automatic retry on failure.
func (s *service) MarkSold(ctx context.Context, ownerID, listingID, buyerID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.markSold(ctx, ownerID, listingID, buyerID)
	if err != nil {
		s.metrics.IncFailure(markSoldAction, string(pkgerrors.As(err).Code()))
		return nil, err
	}
	s.metrics.IncSuccess(markSoldAction)
	return transaction, nil
}

func (s *service) markSold(ctx context.Context, ownerID, listingID, buyerID uuid.UUID) (*models.Transaction, error) {
	if ownerID == uuid.Nil || listingID == uuid.Nil || buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id, listing id and buyer id are required")
	}
	if ownerID == buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeSelfAction, "cannot sell a listing to yourself")
	}

	listing, err := s.repo.FindListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if listing.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner may finalize a sale")
	}
	if !listing.Status.CanTransitionTo(enums.ListingStatusSold) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "listing has already been sold")
	}

	transaction := &models.Transaction{
		ListingID:  listingID,
		SellerID:   ownerID,
		BuyerID:    buyerID,
		PriceCents: listing.PriceCents,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		rows, err := repo.MarkListingSold(ctx, listingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark listing sold")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "listing has already been sold")
		}

		if err := repo.CreateTransaction(ctx, transaction); err != nil {
			if db.IsUniqueViolation(err, "ux_transactions_listing_buyer") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sale already recorded for this buyer")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}
