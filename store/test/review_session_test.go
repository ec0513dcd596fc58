package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/coderev/store"
)

func TestReviewSessionStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateReviewSession(ctx, &store.ReviewSession{
		Code:   "function sum() { return 1 + 1; }",
		Review: "Consider taking the addends as parameters.",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotEmpty(t, created.UID)
	require.NotZero(t, created.CreatedTs)
	require.GreaterOrEqual(t, created.UpdatedTs, created.CreatedTs)

	got, err := ts.GetReviewSession(ctx, &store.FindReviewSession{UID: &created.UID})
	require.NoError(t, err)
	require.Equal(t, created.Code, got.Code)
	require.Equal(t, created.Review, got.Review)
}

func TestReviewSessionListOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	uids := make([]string, 0, 3)
	for _, code := range []string{"a()", "b()", "c()"} {
		s, err := ts.CreateReviewSession(ctx, &store.ReviewSession{Code: code, Review: "ok"})
		require.NoError(t, err)
		uids = append(uids, s.UID)
	}

	// Newest-first: creation order reversed.
	list, err := ts.ListReviewSessions(ctx, &store.FindReviewSession{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, uids[2], list[0].UID)
	require.Equal(t, uids[1], list[1].UID)
	require.Equal(t, uids[0], list[2].UID)

	// Stable: a second listing with no intervening mutation is identical.
	again, err := ts.ListReviewSessions(ctx, &store.FindReviewSession{})
	require.NoError(t, err)
	require.Equal(t, list, again)
}

func TestReviewSessionListEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	list, err := ts.ListReviewSessions(ctx, &store.FindReviewSession{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestReviewSessionUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateReviewSession(ctx, &store.ReviewSession{
		Code:   "let x = 1",
		Review: "Prefer const for bindings that are never reassigned.",
	})
	require.NoError(t, err)

	// Partial update: only code changes, review stays.
	newCode := "const x = 1"
	updated, err := ts.UpdateReviewSession(ctx, &store.UpdateReviewSession{
		UID:  created.UID,
		Code: &newCode,
	})
	require.NoError(t, err)
	require.Equal(t, newCode, updated.Code)
	require.Equal(t, created.Review, updated.Review)
	require.GreaterOrEqual(t, updated.UpdatedTs, created.UpdatedTs)

	// Partial update: only review changes, code stays.
	newReview := "looks fine"
	updated, err = ts.UpdateReviewSession(ctx, &store.UpdateReviewSession{
		UID:    created.UID,
		Review: &newReview,
	})
	require.NoError(t, err)
	require.Equal(t, newCode, updated.Code)
	require.Equal(t, newReview, updated.Review)

	_, err = ts.UpdateReviewSession(ctx, &store.UpdateReviewSession{
		UID:  "no-such-uid",
		Code: &newCode,
	})
	require.ErrorIs(t, err, store.ErrReviewSessionNotFound)
}

func TestReviewSessionDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateReviewSession(ctx, &store.ReviewSession{Code: "x", Review: "y"})
	require.NoError(t, err)

	require.NoError(t, ts.DeleteReviewSession(ctx, &store.DeleteReviewSession{UID: created.UID}))

	_, err = ts.GetReviewSession(ctx, &store.FindReviewSession{UID: &created.UID})
	require.ErrorIs(t, err, store.ErrReviewSessionNotFound)

	// Repeated delete of the same uid stays NotFound, never success.
	err = ts.DeleteReviewSession(ctx, &store.DeleteReviewSession{UID: created.UID})
	require.ErrorIs(t, err, store.ErrReviewSessionNotFound)
}

func TestReviewSessionUIDUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		s, err := ts.CreateReviewSession(ctx, &store.ReviewSession{Code: "x", Review: "y"})
		require.NoError(t, err)
		require.False(t, seen[s.UID], "uid %q assigned twice", s.UID)
		seen[s.UID] = true
	}
}
