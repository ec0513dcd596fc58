package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/coderev/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// CreateReviewSession assigns a fresh uid and persists the session.
// Timestamps are assigned by the driver.
func (s *Store) CreateReviewSession(ctx context.Context, create *ReviewSession) (*ReviewSession, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateReviewSession(ctx, create)
}

func (s *Store) ListReviewSessions(ctx context.Context, find *FindReviewSession) ([]*ReviewSession, error) {
	return s.driver.ListReviewSessions(ctx, find)
}

func (s *Store) GetReviewSession(ctx context.Context, find *FindReviewSession) (*ReviewSession, error) {
	return s.driver.GetReviewSession(ctx, find)
}

func (s *Store) UpdateReviewSession(ctx context.Context, update *UpdateReviewSession) (*ReviewSession, error) {
	return s.driver.UpdateReviewSession(ctx, update)
}

func (s *Store) DeleteReviewSession(ctx context.Context, delete *DeleteReviewSession) error {
	return s.driver.DeleteReviewSession(ctx, delete)
}
