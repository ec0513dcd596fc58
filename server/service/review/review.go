// Package review implements the review session lifecycle: validate the
// submitted code, obtain a review from the AI collaborator, persist the pair,
// and expose list/edit/delete over the stored history.
package review

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/hrygo/coderev/server/internal/errors"
	"github.com/hrygo/coderev/store"
)

// maxConcurrentReviews bounds in-flight AI calls so a burst of submissions
// cannot exhaust the upstream quota.
const maxConcurrentReviews = 4

// CodeReviewer is the external AI collaborator contract: code in, review out.
type CodeReviewer interface {
	Review(ctx context.Context, code string) (string, error)
}

// Service is the business logic layer between the API and the store.
type Service struct {
	store    *store.Store
	reviewer CodeReviewer

	// reviewSemaphore limits concurrent AI calls.
	reviewSemaphore *semaphore.Weighted
}

// NewService creates a review service over the given store handle and reviewer.
func NewService(store *store.Store, reviewer CodeReviewer) *Service {
	return &Service{
		store:           store,
		reviewer:        reviewer,
		reviewSemaphore: semaphore.NewWeighted(maxConcurrentReviews),
	}
}

// SubmitReview reviews the given code via the AI collaborator and persists
// the resulting session. A failed AI call persists nothing, so history never
// contains a session with an empty or garbage review.
func (s *Service) SubmitReview(ctx context.Context, code string) (*store.ReviewSession, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.InvalidArgument("code is required")
	}

	if err := s.reviewSemaphore.Acquire(ctx, 1); err != nil {
		return nil, errors.AIUnavailable("review capacity unavailable", err)
	}
	reviewText, err := s.reviewer.Review(ctx, code)
	s.reviewSemaphore.Release(1)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Timeout("AI review timed out", err)
		}
		return nil, errors.AIUnavailable("AI review failed", err)
	}

	session, err := s.store.CreateReviewSession(ctx, &store.ReviewSession{
		Code:   code,
		Review: reviewText,
	})
	if err != nil {
		return nil, errors.StoreFailure("failed to persist review session", err)
	}

	return session, nil
}

// ListSessions returns the full review history, newest-first.
func (s *Service) ListSessions(ctx context.Context) ([]*store.ReviewSession, error) {
	list, err := s.store.ListReviewSessions(ctx, &store.FindReviewSession{})
	if err != nil {
		return nil, errors.StoreFailure("failed to list review sessions", err)
	}
	return list, nil
}

// GetSession fetches a single session by its uid.
func (s *Service) GetSession(ctx context.Context, uid string) (*store.ReviewSession, error) {
	session, err := s.store.GetReviewSession(ctx, &store.FindReviewSession{UID: &uid})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return session, nil
}

// EditSession overwrites the provided fields of a session. This is a manual
// override path: the AI collaborator is not re-invoked, the edit is persisted
// verbatim.
func (s *Service) EditSession(ctx context.Context, uid string, code, review *string) (*store.ReviewSession, error) {
	if code == nil && review == nil {
		return nil, errors.InvalidArgument("nothing to update: provide code and/or review")
	}
	if code != nil && strings.TrimSpace(*code) == "" {
		return nil, errors.InvalidArgument("code must not be empty")
	}

	session, err := s.store.UpdateReviewSession(ctx, &store.UpdateReviewSession{
		UID:    uid,
		Code:   code,
		Review: review,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return session, nil
}

// RemoveSession deletes a session by its uid.
func (s *Service) RemoveSession(ctx context.Context, uid string) error {
	if err := s.store.DeleteReviewSession(ctx, &store.DeleteReviewSession{UID: uid}); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func mapStoreError(err error) error {
	if stderrors.Is(err, store.ErrReviewSessionNotFound) {
		return errors.NotFound("review session not found")
	}
	return errors.StoreFailure("review session store failure", err)
}
