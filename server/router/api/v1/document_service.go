package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	apierrors "github.com/nebulanotes/constellation/server/internal/errors"
	"github.com/nebulanotes/constellation/store"
)

type createDocumentRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

type documentResponse struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	CreatedTs int64  `json:"created_ts"`
}

func toDocumentResponse(d *store.Document) documentResponse {
	return documentResponse{
		Name:      d.Name,
		Date:      d.Date.Format("2006-01-02"),
		CreatedTs: d.CreatedTs,
	}
}

func (s *APIV1Service) CreateDocument(c echo.Context) error {
	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.Name == "" {
		return respondError(c, apierrors.InvalidArgument("document name is required"))
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return respondError(c, apierrors.InvalidArgument("date must be YYYY-MM-DD"))
		}
		date = parsed
	}

	document, err := s.Store.UpsertDocument(c.Request().Context(), &store.Document{
		Name: req.Name,
		Date: date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDocumentResponse(document))
}

func (s *APIV1Service) ListDocuments(c echo.Context) error {
	documents, err := s.Store.ListDocuments(c.Request().Context(), &store.FindDocument{})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]documentResponse, 0, len(documents))
	for _, d := range documents {
		out = append(out, toDocumentResponse(d))
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": out})
}

func (s *APIV1Service) DeleteDocument(c echo.Context) error {
	name := c.Param("name")
	documents, err := s.Store.ListDocuments(c.Request().Context(), &store.FindDocument{Name: &name})
	if err != nil {
		return respondError(c, err)
	}
	if len(documents) == 0 {
		return respondError(c, apierrors.NotFound("document not found"))
	}
	if err := s.Store.DeleteDocument(c.Request().Context(), &store.DeleteDocument{Name: name}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createThoughtRequest struct {
	Text  string  `json:"text"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
}

func (s *APIV1Service) ListThoughts(c echo.Context) error {
	name := c.Param("name")
	thoughts, err := s.Store.ListThoughts(c.Request().Context(), &store.FindThought{DocumentName: &name})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"thoughts": thoughts})
}

func (s *APIV1Service) CreateThought(c echo.Context) error {
	name := c.Param("name")
	var req createThoughtRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.Text == "" {
		return respondError(c, apierrors.InvalidArgument("thought text is required"))
	}

	documents, err := s.Store.ListDocuments(c.Request().Context(), &store.FindDocument{Name: &name})
	if err != nil {
		return respondError(c, err)
	}
	if len(documents) == 0 {
		return respondError(c, apierrors.NotFound("document not found"))
	}

	thought, err := s.Store.CreateThought(c.Request().Context(), &store.Thought{
		ID:           shortuuid.New(),
		DocumentName: name,
		Text:         req.Text,
		Color:        req.Color,
		X:            req.X,
		Y:            req.Y,
		Size:         req.Size,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, thought)
}
