// Package server assembles the HTTP service: store, engine, optional AI
// provider, background runners and the echo router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/internal/profile"
	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/engine"
	"github.com/nebulanotes/constellation/plugin/constellation/layout"
	"github.com/nebulanotes/constellation/server/ai"
	apiv1 "github.com/nebulanotes/constellation/server/router/api/v1"
	"github.com/nebulanotes/constellation/server/runner/embedding"
	"github.com/nebulanotes/constellation/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store
	Engine  *engine.Engine

	echoServer *echo.Echo
	provider   *ai.Provider
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	cfg := constellation.DefaultConfig()
	cfg.MergeThreshold = profile.MergeThreshold
	eng := engine.New(cfg, layout.New(layout.NewRand()), slog.Default())

	s := &Server{
		Profile: profile,
		Store:   store,
		Engine:  eng,
	}

	if profile.IsAIEnabled() {
		provider, err := ai.NewProvider(&ai.Config{
			BaseURL:           profile.AIBaseURL,
			APIKey:            profile.AIAPIKey,
			EmbeddingModel:    profile.AIEmbeddingModel,
			ChatModel:         profile.AIChatModel,
			RequestsPerSecond: profile.AIRequestsPerSec,
		})
		if err != nil {
			slog.Warn("AI provider disabled", "error", err)
		} else {
			s.provider = provider
		}
	}

	echoServer := echo.New()
	echoServer.Debug = true
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			slog.Debug("request", "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	echoServer.Use(echomiddleware.CORS())
	echoServer.Use(echomiddleware.Recover())
	s.echoServer = echoServer

	apiService := apiv1.NewAPIV1Service(profile, store, eng, s.provider)
	apiService.RegisterRoutes(echoServer)

	// Seed the engine from stored thoughts so insights are available before
	// the first analyze request.
	if thoughts, err := store.ListAnalysisThoughts(ctx); err != nil {
		slog.Warn("failed to load stored thoughts for initial analysis", "error", err)
	} else if len(thoughts) > 0 {
		eng.Analyze(thoughts, profile.MergeThreshold)
	}

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	go s.Engine.Run(ctx, s.Profile.TickInterval)
	s.StartBackgroundRunners(ctx)

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode)
	return s.echoServer.Start(address)
}

// StartBackgroundRunners launches the embedding precompute loop when the
// provider and a vector-capable driver are both available.
func (s *Server) StartBackgroundRunners(ctx context.Context) {
	if s.provider == nil || s.Profile.Driver != "postgres" {
		return
	}
	runner := embedding.NewRunner(s.Store, s.provider, s.Profile.AIEmbeddingModel)
	go runner.Run(ctx)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", errors.Wrap(err, "shutdown"))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
	slog.Info("constellation stopped properly")
}
