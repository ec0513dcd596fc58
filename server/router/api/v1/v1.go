// Package v1 is the stateless HTTP+JSON boundary over the review service.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/hrygo/coderev/internal/profile"
	"github.com/hrygo/coderev/server/middleware"
	"github.com/hrygo/coderev/server/service/review"
	"github.com/hrygo/coderev/store"
)

type APIV1Service struct {
	Profile       *profile.Profile
	Store         *store.Store
	ReviewService *review.Service

	rateLimiter *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, reviewService *review.Service) *APIV1Service {
	return &APIV1Service{
		Profile:       profile,
		Store:         store,
		ReviewService: reviewService,
		rateLimiter:   middleware.NewRateLimiter(),
	}
}

// Register mounts the review API routes on the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	// Submissions fan out to the AI collaborator, so they get a per-client
	// rate limit the read/write session routes do not need.
	echoServer.POST("/review", s.SubmitReview, middleware.RateLimit(s.rateLimiter))

	echoServer.GET("/sessions", s.ListSessions)
	echoServer.GET("/sessions/:id", s.GetSession)
	echoServer.PUT("/sessions/:id", s.UpdateSession)
	echoServer.DELETE("/sessions/:id", s.DeleteSession)
}
