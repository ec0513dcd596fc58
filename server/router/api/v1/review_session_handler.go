package v1

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/coderev/server/internal/errors"
	"github.com/hrygo/coderev/server/service/markdown"
	"github.com/hrygo/coderev/store"
)

type SubmitReviewRequest struct {
	Code string `json:"code"`
}

type SubmitReviewResponse struct {
	// ID is returned so the client can edit or delete the session without a
	// full list refresh.
	ID     string `json:"id"`
	Review string `json:"review"`
}

type UpdateSessionRequest struct {
	Code   *string `json:"code"`
	Review *string `json:"review"`
}

type ReviewSession struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewSessionDetail adds the pre-rendered review HTML to the session detail.
type ReviewSessionDetail struct {
	ReviewSession
	ReviewHTML string `json:"reviewHtml"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// SubmitReview handles POST /review.
func (s *APIV1Service) SubmitReview(c echo.Context) error {
	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}

	session, err := s.ReviewService.SubmitReview(c.Request().Context(), req.Code)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SubmitReviewResponse{
		ID:     session.UID,
		Review: session.Review,
	})
}

// ListSessions handles GET /sessions. An empty history is a 200 with an
// empty array, never an error.
func (s *APIV1Service) ListSessions(c echo.Context) error {
	sessions, err := s.ReviewService.ListSessions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]ReviewSession, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, convertReviewSession(session))
	}
	return c.JSON(http.StatusOK, response)
}

// GetSession handles GET /sessions/:id.
func (s *APIV1Service) GetSession(c echo.Context) error {
	session, err := s.ReviewService.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ReviewSessionDetail{
		ReviewSession: convertReviewSession(session),
		ReviewHTML:    markdown.Render(session.Review),
	})
}

// UpdateSession handles PUT /sessions/:id.
func (s *APIV1Service) UpdateSession(c echo.Context) error {
	var req UpdateSessionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}

	session, err := s.ReviewService.EditSession(c.Request().Context(), c.Param("id"), req.Code, req.Review)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, convertReviewSession(session))
}

// DeleteSession handles DELETE /sessions/:id.
func (s *APIV1Service) DeleteSession(c echo.Context) error {
	if err := s.ReviewService.RemoveSession(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func convertReviewSession(session *store.ReviewSession) ReviewSession {
	return ReviewSession{
		ID:        session.UID,
		Code:      session.Code,
		Review:    session.Review,
		CreatedAt: time.Unix(session.CreatedTs, 0).UTC(),
		UpdatedAt: time.Unix(session.UpdatedTs, 0).UTC(),
	}
}

// writeError maps a taxonomy error to a status code and a human-readable
// message. Internal causes (backend error text, stack traces) never reach
// the client.
func writeError(c echo.Context, err error) error {
	code := errors.CodeOf(err, errors.CodeStoreFailure)

	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeAIUnavailable, errors.CodeTimeout:
		status = http.StatusBadGateway
	}

	message := "internal server error"
	var taxonomyErr *errors.Error
	if stderrors.As(err, &taxonomyErr) {
		message = taxonomyErr.Message
	}

	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		slog.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"code", code,
			"error", err)
	}

	return c.JSON(status, ErrorResponse{Message: message})
}
