package review

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/coderev/server/internal/errors"
	storetest "github.com/hrygo/coderev/store/test"
)

// fakeReviewer returns a canned review or a canned failure.
type fakeReviewer struct {
	review string
	err    error
	calls  int
}

func (f *fakeReviewer) Review(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.review, nil
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	reviewer := &fakeReviewer{review: "Use parameters instead of hardcoded values."}
	svc := NewService(ts, reviewer)

	session, err := svc.SubmitReview(ctx, "function sum() { return 1 + 1; }")
	require.NoError(t, err)
	require.Equal(t, "function sum() { return 1 + 1; }", session.Code)
	require.Equal(t, reviewer.review, session.Review)
	require.NotEmpty(t, session.UID)

	// The session appears in the listing.
	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, session.UID, list[0].UID)
}

func TestSubmitReviewEmptyCode(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	reviewer := &fakeReviewer{review: "ok"}
	svc := NewService(ts, reviewer)

	for _, code := range []string{"", "   ", "\n\t"} {
		_, err := svc.SubmitReview(ctx, code)
		require.True(t, errors.IsCode(err, errors.CodeInvalidArgument), "code %q", code)
	}

	// Validation failures never reach the AI collaborator or the store.
	require.Zero(t, reviewer.calls)
	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSubmitReviewAIFailure(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{err: stderrors.New("quota exceeded")})

	_, err := svc.SubmitReview(ctx, "some code")
	require.True(t, errors.IsCode(err, errors.CodeAIUnavailable))

	// A failed review attempt leaves no trace in the store.
	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSubmitReviewTimeout(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{err: context.DeadlineExceeded})

	_, err := svc.SubmitReview(ctx, "some code")
	require.True(t, errors.IsCode(err, errors.CodeTimeout))

	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEditSession(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{review: "initial review"})

	session, err := svc.SubmitReview(ctx, "let x = 1")
	require.NoError(t, err)

	// Editing only the code leaves the review untouched.
	newCode := "const x = 1"
	updated, err := svc.EditSession(ctx, session.UID, &newCode, nil)
	require.NoError(t, err)
	require.Equal(t, newCode, updated.Code)
	require.Equal(t, "initial review", updated.Review)

	// Editing only the review leaves the code untouched, and the AI
	// collaborator is never re-invoked on edit.
	reviewer := &fakeReviewer{review: "should not be used"}
	svc = NewService(ts, reviewer)
	newReview := "looks fine"
	updated, err = svc.EditSession(ctx, session.UID, nil, &newReview)
	require.NoError(t, err)
	require.Equal(t, newCode, updated.Code)
	require.Equal(t, "looks fine", updated.Review)
	require.Zero(t, reviewer.calls)
}

func TestEditSessionValidation(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{review: "r"})

	session, err := svc.SubmitReview(ctx, "code")
	require.NoError(t, err)

	_, err = svc.EditSession(ctx, session.UID, nil, nil)
	require.True(t, errors.IsCode(err, errors.CodeInvalidArgument))

	empty := "  "
	_, err = svc.EditSession(ctx, session.UID, &empty, nil)
	require.True(t, errors.IsCode(err, errors.CodeInvalidArgument))

	code := "x"
	_, err = svc.EditSession(ctx, "no-such-uid", &code, nil)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestRemoveSession(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{review: "r"})

	session, err := svc.SubmitReview(ctx, "code")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSession(ctx, session.UID))

	_, err = svc.GetSession(ctx, session.UID)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))

	err = svc.RemoveSession(ctx, session.UID)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

// TestReviewLifecycle walks the full scenario: submit, edit the review by
// hand, then delete.
func TestReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, &fakeReviewer{review: "Name the function after what it sums."})

	session, err := svc.SubmitReview(ctx, "function sum(){return 1+1;}")
	require.NoError(t, err)
	require.Equal(t, "function sum(){return 1+1;}", session.Code)
	require.NotEmpty(t, session.Review)

	newReview := "looks fine"
	updated, err := svc.EditSession(ctx, session.UID, nil, &newReview)
	require.NoError(t, err)
	require.Equal(t, session.Code, updated.Code)
	require.Equal(t, "looks fine", updated.Review)

	require.NoError(t, svc.RemoveSession(ctx, session.UID))
	_, err = svc.GetSession(ctx, session.UID)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}
