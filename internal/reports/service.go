package reports

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db/models"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
	"github.com/campusmkt/campusmkt-backend/pkg/ratelimit"
)

const submitReportAction = "submit_report"

// SubmitInput carries a listing report submission.
type SubmitInput struct {
	ReporterID uuid.UUID
	ListingID  uuid.UUID
	Reason     string
	Details    *string
}

// ServiceParams groups dependencies for the reports service.
type ServiceParams struct {
	Repo    Repository
	Limiter ratelimit.Limiter
	Limits  config.RateLimitConfig
}

// Service records listing reports. Working the moderation queue is an
// external concern; the engine only accepts submissions.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Report, error)
}

type service struct {
	repo    Repository
	limiter ratelimit.Limiter
	limits  config.RateLimitConfig
}

// NewService builds a reports service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reports repo is required")
	}
	if params.Limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	return &service{
		repo:    params.Repo,
		limiter: params.Limiter,
		limits:  params.Limits,
	}, nil
}

// Submit validates and records a report against a listing.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Report, error) {
	if input.ReporterID == uuid.Nil || input.ListingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reporter id and listing id are required")
	}
	if len(strings.TrimSpace(input.Reason)) < 3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason must be at least 3 characters")
	}
	if input.Details != nil && len(strings.TrimSpace(*input.Details)) < 3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "details must be at least 3 characters")
	}

	if _, err := s.repo.FindListing(ctx, input.ListingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}

	limited, err := s.limiter.IsLimited(ctx, ratelimit.Key(input.ReporterID.String(), submitReportAction), s.limits.ReportLimit, s.limits.ReportWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check report rate limit")
	}
	if limited {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many reports, slow down")
	}

	report := &models.Report{
		ListingID:  input.ListingID,
		ReporterID: input.ReporterID,
		Reason:     strings.TrimSpace(input.Reason),
		Details:    input.Details,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist report")
	}
	return report, nil
}
