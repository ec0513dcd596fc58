package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestReviewer(t *testing.T, handler http.HandlerFunc) *Reviewer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reviewer, err := NewReviewer(&Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		MaxRetries: 1,
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)
	return reviewer
}

func TestReviewerReview(t *testing.T) {
	reviewer := newTestReviewer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "## Review\n\nLooks reasonable."}, "finish_reason": "stop"}]
		}`))
	})

	review, err := reviewer.Review(context.Background(), "function sum() { return 1 + 1; }")
	require.NoError(t, err)
	require.Equal(t, "## Review\n\nLooks reasonable.", review)
}

func TestReviewerUpstreamFailure(t *testing.T) {
	reviewer := newTestReviewer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := reviewer.Review(context.Background(), "code")
	require.Error(t, err)
}

func TestReviewerEmptyChoices(t *testing.T) {
	reviewer := newTestReviewer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := reviewer.Review(context.Background(), "code")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty completion response")
}

func TestReviewerBlankContent(t *testing.T) {
	reviewer := newTestReviewer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-3",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "   "}, "finish_reason": "stop"}]
		}`))
	})

	_, err := reviewer.Review(context.Background(), "code")
	require.Error(t, err)
	require.Contains(t, err.Error(), "blank review")
}

func TestReviewerRetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, `{"error": {"message": "transient"}}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-4",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "fine"}, "finish_reason": "stop"}]
		}`))
	}))
	t.Cleanup(srv.Close)

	reviewer, err := NewReviewer(&Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		MaxRetries: 2,
		Timeout:    10 * time.Second,
	})
	require.NoError(t, err)

	review, err := reviewer.Review(context.Background(), "code")
	require.NoError(t, err)
	require.Equal(t, "fine", review)
	require.Equal(t, 2, calls)
}
