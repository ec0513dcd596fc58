package store

import "errors"

// ErrReviewSessionNotFound is returned when no review session matches the
// requested identifier. Repeated deletes of the same id keep returning it.
var ErrReviewSessionNotFound = errors.New("review session not found")

// ReviewSession pairs a submitted code snippet with its AI-generated
// (or hand-edited) review text.
type ReviewSession struct {
	ID int32
	// UID is the client-facing identifier, assigned at creation, never reused.
	UID       string
	Code      string
	Review    string
	CreatedTs int64
	UpdatedTs int64
}

type FindReviewSession struct {
	ID  *int32
	UID *string
}

// UpdateReviewSession overwrites only the fields that are set.
// UpdatedTs is always refreshed by the driver.
type UpdateReviewSession struct {
	UID    string
	Code   *string
	Review *string
}

type DeleteReviewSession struct {
	UID string
}
