package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// ReviewSession model related methods.
	CreateReviewSession(ctx context.Context, create *ReviewSession) (*ReviewSession, error)
	ListReviewSessions(ctx context.Context, find *FindReviewSession) ([]*ReviewSession, error)
	GetReviewSession(ctx context.Context, find *FindReviewSession) (*ReviewSession, error)
	UpdateReviewSession(ctx context.Context, update *UpdateReviewSession) (*ReviewSession, error)
	DeleteReviewSession(ctx context.Context, delete *DeleteReviewSession) error
}
