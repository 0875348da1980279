package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/campusmkt/campusmkt-backend/pkg/enums"
	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

type stubEngagementRepo struct {
	savedCalls  int
	followCalls int
	toggleErr   error
	listResult  SavedPage
	listErr     error
}

func (s *stubEngagementRepo) ToggleSavedListing(ctx context.Context, userID, listingID uuid.UUID) error {
	s.savedCalls++
	return s.toggleErr
}

func (s *stubEngagementRepo) ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	s.followCalls++
	return s.toggleErr
}

func (s *stubEngagementRepo) ListSaved(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedPage, error) {
	if s.listErr != nil {
		return SavedPage{}, s.listErr
	}
	return s.listResult, nil
}

func newEngagementService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestToggleDispatchesByKind(t *testing.T) {
	repo := &stubEngagementRepo{}
	svc := newEngagementService(t, repo)

	if err := svc.Toggle(context.Background(), enums.RelationKindSavedListing, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Toggle(context.Background(), enums.RelationKindFollow, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.savedCalls != 1 || repo.followCalls != 1 {
		t.Fatalf("expected one call each, got saved=%d follow=%d", repo.savedCalls, repo.followCalls)
	}
}

func TestToggleSelfTargetIsSilentNoOp(t *testing.T) {
	repo := &stubEngagementRepo{}
	svc := newEngagementService(t, repo)

	actor := uuid.New()
	if err := svc.Toggle(context.Background(), enums.RelationKindFollow, actor, actor); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if repo.followCalls != 0 {
		t.Fatal("self-target must not reach storage")
	}
}

func TestToggleSwallowsStorageFailure(t *testing.T) {
	repo := &stubEngagementRepo{toggleErr: errors.New("connection refused")}
	svc := newEngagementService(t, repo)

	if err := svc.Toggle(context.Background(), enums.RelationKindSavedListing, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("storage failure must degrade to no-op, got %v", err)
	}
}

func TestToggleRejectsUnknownKind(t *testing.T) {
	svc := newEngagementService(t, &stubEngagementRepo{})

	err := svc.Toggle(context.Background(), enums.RelationKind("like"), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggleIsInvolutionAtServiceLevel(t *testing.T) {
	// Two toggles hit storage twice; net state is the repo's concern, but the
	// service must forward both without short-circuiting.
	repo := &stubEngagementRepo{}
	svc := newEngagementService(t, repo)

	actor, target := uuid.New(), uuid.New()
	for i := 0; i < 2; i++ {
		if err := svc.Toggle(context.Background(), enums.RelationKindSavedListing, actor, target); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if repo.savedCalls != 2 {
		t.Fatalf("expected 2 storage flips, got %d", repo.savedCalls)
	}
}

func TestListSavedPropagatesErrors(t *testing.T) {
	repo := &stubEngagementRepo{listErr: errors.New("boom")}
	svc := newEngagementService(t, repo)

	_, err := svc.ListSaved(context.Background(), uuid.New(), "", 20)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
