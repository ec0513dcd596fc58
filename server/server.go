// Package server wires the HTTP server around the review service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/coderev/internal/profile"
	"github.com/hrygo/coderev/server/ai"
	"github.com/hrygo/coderev/server/middleware"
	apiv1 "github.com/hrygo/coderev/server/router/api/v1"
	"github.com/hrygo/coderev/server/service/review"
	"github.com/hrygo/coderev/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(_ context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	reviewer, err := ai.NewReviewerFromProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(
		middleware.RequestLogger(),
		echomiddleware.Recover(),
		echomiddleware.CORS(),
	)

	reviewService := review.NewService(store, reviewer)
	apiV1Service := apiv1.NewAPIV1Service(profile, store, reviewService)
	apiV1Service.Register(echoServer)

	return &Server{
		Profile:    profile,
		Store:      store,
		echoServer: echoServer,
	}, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "version", s.Profile.Version)
	return s.echoServer.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	slog.Info("server stopped")
}
