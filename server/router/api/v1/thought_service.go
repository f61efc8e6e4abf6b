package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/nebulanotes/constellation/server/internal/errors"
	"github.com/nebulanotes/constellation/store"
)

type updateThoughtRequest struct {
	Text  *string  `json:"text"`
	Color *string  `json:"color"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Size  *float64 `json:"size"`
}

func (s *APIV1Service) UpdateThought(c echo.Context) error {
	id := c.Param("id")
	var req updateThoughtRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.Text != nil && *req.Text == "" {
		return respondError(c, apierrors.InvalidArgument("thought text cannot be empty"))
	}

	err := s.Store.UpdateThought(c.Request().Context(), &store.UpdateThought{
		ID:    id,
		Text:  req.Text,
		Color: req.Color,
		X:     req.X,
		Y:     req.Y,
		Size:  req.Size,
	})
	if err != nil {
		return respondError(c, apierrors.Wrap(err, apierrors.ErrCodeNotFound, "failed to update thought"))
	}

	// Text changed means the cached embedding is stale.
	if req.Text != nil {
		if err := s.Store.DeleteThoughtEmbedding(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
	}

	thoughts, err := s.Store.ListThoughts(c.Request().Context(), &store.FindThought{ID: &id})
	if err != nil {
		return respondError(c, err)
	}
	if len(thoughts) == 0 {
		return respondError(c, apierrors.NotFound("thought not found"))
	}
	return c.JSON(http.StatusOK, thoughts[0])
}

func (s *APIV1Service) DeleteThought(c echo.Context) error {
	id := c.Param("id")
	if err := s.Store.DeleteThought(c.Request().Context(), &store.DeleteThought{ID: id}); err != nil {
		return respondError(c, apierrors.Wrap(err, apierrors.ErrCodeNotFound, "failed to delete thought"))
	}
	return c.NoContent(http.StatusNoContent)
}
