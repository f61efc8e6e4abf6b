package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nebulanotes/constellation/internal/filter"
	"github.com/nebulanotes/constellation/plugin/constellation"
	"github.com/nebulanotes/constellation/plugin/constellation/embedcluster"
	"github.com/nebulanotes/constellation/plugin/constellation/engine"
	"github.com/nebulanotes/constellation/plugin/constellation/layout"
	"github.com/nebulanotes/constellation/plugin/markdown"
	"github.com/nebulanotes/constellation/server/ai"
	apierrors "github.com/nebulanotes/constellation/server/internal/errors"
	"github.com/nebulanotes/constellation/server/internal/observability"
)

type analyzeThought struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	Color        string  `json:"color"`
	DocumentName string  `json:"document_name"`
	DocumentDate string  `json:"document_date"` // YYYY-MM-DD
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Size         float64 `json:"size"`
}

type analyzeRequest struct {
	// Thoughts analyzes the inline batch; when empty the stored thoughts are
	// loaded, optionally narrowed by Filter.
	Thoughts       []analyzeThought `json:"thoughts"`
	Filter         string           `json:"filter"`
	MergeThreshold float64          `json:"merge_threshold"`
	// UseEmbeddings adds provider-embedding clusters to the response when the
	// AI path is configured. Failures there never fail the request.
	UseEmbeddings bool `json:"use_embeddings"`
}

type analyzeResponse struct {
	*engine.Snapshot
	EmbeddingClusters *embedcluster.Result `json:"embedding_clusters,omitempty"`
}

func (s *APIV1Service) Analyze(c echo.Context) error {
	reqCtx := observability.NewRequestContext(slog.Default(), "analyze")

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		observe(reqCtx, err)
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}

	thoughts, err := s.collectThoughts(c, &req)
	if err != nil {
		observe(reqCtx, err)
		return respondError(c, err)
	}

	// Markdown is stripped here so formatting characters never count as
	// words in the similarity analysis.
	for i := range thoughts {
		thoughts[i].Text = markdown.PlainText(thoughts[i].Text)
	}

	snap := s.Engine.Analyze(thoughts, req.MergeThreshold)
	resp := &analyzeResponse{Snapshot: snap}

	if req.UseEmbeddings && s.Provider != nil {
		resp.EmbeddingClusters = embedcluster.Run(c.Request().Context(), s.Provider, thoughts, embedcluster.DefaultConfig())
	}

	reqCtx.Info("analysis complete",
		slog.Int(observability.LogFieldThoughtCount, len(thoughts)),
		slog.Uint64(observability.LogFieldGeneration, snap.Generation),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	observe(reqCtx, nil)
	return c.JSON(http.StatusOK, resp)
}

// collectThoughts resolves the analysis scope: inline batch, or stored
// thoughts narrowed by the optional filter expression.
func (s *APIV1Service) collectThoughts(c echo.Context, req *analyzeRequest) ([]constellation.Thought, error) {
	if len(req.Thoughts) > 0 {
		thoughts := make([]constellation.Thought, 0, len(req.Thoughts))
		for _, t := range req.Thoughts {
			if strings.TrimSpace(t.Text) == "" {
				continue
			}
			date := time.Time{}
			if t.DocumentDate != "" {
				parsed, err := time.Parse("2006-01-02", t.DocumentDate)
				if err != nil {
					return nil, apierrors.InvalidArgument("document_date must be YYYY-MM-DD")
				}
				date = parsed
			}
			thoughts = append(thoughts, constellation.Thought{
				ID:           t.ID,
				Text:         t.Text,
				Color:        t.Color,
				DocumentName: t.DocumentName,
				DocumentDate: date,
				X:            t.X,
				Y:            t.Y,
				Size:         t.Size,
			})
		}
		return thoughts, nil
	}

	matcher, err := filter.Compile(req.Filter)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid filter")
	}
	stored, err := s.Store.ListAnalysisThoughts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return matcher.Apply(stored), nil
}

type organizeRequest struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	Padding      float64 `json:"padding"`
	// Seed makes the layout deterministic; 0 keeps the shared RNG.
	Seed int64 `json:"seed"`
}

func (s *APIV1Service) Organize(c echo.Context) error {
	reqCtx := observability.NewRequestContext(slog.Default(), "organize")

	var req organizeRequest
	if err := c.Bind(&req); err != nil {
		observe(reqCtx, err)
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.CanvasWidth <= 0 || req.CanvasHeight <= 0 {
		observe(reqCtx, apierrors.InvalidArgument("canvas dimensions"))
		return respondError(c, apierrors.InvalidArgument("canvas_width and canvas_height must be positive"))
	}

	var result *layout.Result
	var err error
	if req.Seed != 0 {
		seeded := layout.New(layout.NewSeededRand(req.Seed))
		result, err = s.Engine.OrganizeWith(c.Request().Context(), seeded, req.CanvasWidth, req.CanvasHeight, req.Padding)
	} else {
		result, err = s.Engine.Organize(c.Request().Context(), req.CanvasWidth, req.CanvasHeight, req.Padding)
	}
	if err != nil {
		observe(reqCtx, err)
		return respondError(c, err)
	}

	observe(reqCtx, nil)
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) GetInsights(c echo.Context) error {
	snap := s.Engine.Snapshot()
	return c.JSON(http.StatusOK, map[string]any{
		"generation": snap.Generation,
		"insights":   snap.Insights,
	})
}

type questionsResponse struct {
	Generation uint64   `json:"generation"`
	Source     string   `json:"source"` // "llm" or "template"
	Synthesis  string   `json:"synthesis"`
	Questions  []string `json:"questions"`
}

// GenerateQuestions returns the narrative synthesis and path questions. When
// the chat provider is configured it rewrites the templated output; a
// provider failure or an analysis that lands mid-request falls back to the
// templated baseline.
func (s *APIV1Service) GenerateQuestions(c echo.Context) error {
	reqCtx := observability.NewRequestContext(slog.Default(), "questions")

	snap := s.Engine.Snapshot()
	templated := &questionsResponse{
		Generation: snap.Generation,
		Source:     "template",
		Synthesis:  snap.Insights.Synthesis,
		Questions:  snap.Insights.Questions,
	}

	if s.Provider == nil {
		observe(reqCtx, nil)
		return c.JSON(http.StatusOK, templated)
	}

	cacheKey := fmt.Sprintf("narrative:%d", snap.Generation)
	if cached, ok := s.narrativeCache.Get(cacheKey); ok {
		var resp questionsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			observe(reqCtx, nil)
			return c.JSON(http.StatusOK, &resp)
		}
	}

	result := s.Provider.GenerateNarrative(c.Request().Context(), &ai.NarrativeRequest{
		ThoughtsSummary: snap.Insights.Synthesis,
		Patterns:        snap.Insights.Patterns,
		Stats:           snap.Insights.Stats,
	})
	if result.Error != "" {
		reqCtx.Warn("narrative provider failed, using templated output",
			slog.String("provider_error", result.Error))
		observe(reqCtx, nil)
		return c.JSON(http.StatusOK, templated)
	}
	if s.Engine.Generation() != snap.Generation {
		// The constellation changed while the provider was thinking; its
		// narrative describes a superseded analysis.
		reqCtx.Warn("narrative result stale, using templated output",
			slog.Uint64(observability.LogFieldGeneration, snap.Generation))
		observe(reqCtx, nil)
		return c.JSON(http.StatusOK, templated)
	}

	resp := &questionsResponse{
		Generation: snap.Generation,
		Source:     "llm",
		Synthesis:  result.Synthesis,
		Questions:  result.Questions,
	}
	if encoded, err := json.Marshal(resp); err == nil {
		s.narrativeCache.Set(cacheKey, encoded, 0)
	}
	observe(reqCtx, nil)
	return c.JSON(http.StatusOK, resp)
}
