// Package v1 implements the JSON API: document and thought CRUD plus the
// constellation operations (analyze, organize, insights, questions).
package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nebulanotes/constellation/internal/cache"
	"github.com/nebulanotes/constellation/internal/profile"
	"github.com/nebulanotes/constellation/plugin/constellation/engine"
	"github.com/nebulanotes/constellation/server/ai"
	apierrors "github.com/nebulanotes/constellation/server/internal/errors"
	"github.com/nebulanotes/constellation/server/internal/observability"
	"github.com/nebulanotes/constellation/server/middleware"
	"github.com/nebulanotes/constellation/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Engine  *engine.Engine
	// Provider is nil when the optional AI paths are disabled; every handler
	// that touches it falls back to the templated pipeline.
	Provider *ai.Provider

	limiter *middleware.RateLimiter
	// narrativeCache keyed by generation; one narrative per analysis.
	narrativeCache *cache.LRU
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, engine *engine.Engine, provider *ai.Provider) *APIV1Service {
	return &APIV1Service{
		Profile:        profile,
		Store:          store,
		Engine:         engine,
		Provider:       provider,
		limiter:        middleware.NewRateLimiter(10, 20),
		narrativeCache: cache.New(64, 10*time.Minute),
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)

	g := e.Group("/api/v1", s.limiter.Echo())
	g.GET("/instance", s.GetInstance)
	g.GET("/metrics", s.GetMetrics)

	g.POST("/documents", s.CreateDocument)
	g.GET("/documents", s.ListDocuments)
	g.DELETE("/documents/:name", s.DeleteDocument)
	g.GET("/documents/:name/thoughts", s.ListThoughts)
	g.POST("/documents/:name/thoughts", s.CreateThought)
	g.PATCH("/thoughts/:id", s.UpdateThought)
	g.DELETE("/thoughts/:id", s.DeleteThought)

	g.POST("/constellation/analyze", s.Analyze)
	g.POST("/constellation/organize", s.Organize)
	g.GET("/constellation/insights", s.GetInsights)
	g.POST("/constellation/questions", s.GenerateQuestions)
}

// errorBody is the uniform error payload.
type errorBody struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// respondError maps structured engine errors to HTTP statuses.
func respondError(c echo.Context, err error) error {
	code := apierrors.GetCodeFromError(err, apierrors.ErrCodeInternal)
	status := http.StatusInternalServerError
	switch code {
	case apierrors.ErrCodeInvalidArgument, apierrors.ErrCodeEmptyInput:
		status = http.StatusBadRequest
	case apierrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apierrors.ErrCodeStaleGeneration:
		status = http.StatusConflict
	case apierrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case apierrors.ErrCodeProviderUnavailable:
		status = http.StatusServiceUnavailable
	case apierrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	return c.JSON(status, errorBody{Code: code, Message: err.Error()})
}

// observe wraps a handler call with request metrics.
func observe(reqCtx *observability.RequestContext, err error) {
	metrics := observability.GlobalMetrics()
	metrics.RecordRequest(reqCtx.Operation)
	metrics.RecordDuration(reqCtx.Operation, reqCtx.Duration())
	if err != nil {
		metrics.RecordFailure(reqCtx.Operation)
	}
}
