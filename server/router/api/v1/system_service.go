package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nebulanotes/constellation/internal/version"
	"github.com/nebulanotes/constellation/server/internal/observability"
)

func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "Service ready.")
}

func (s *APIV1Service) GetInstance(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"version":    version.GetCurrentVersion(s.Profile.Mode),
		"mode":       s.Profile.Mode,
		"driver":     s.Profile.Driver,
		"ai_enabled": s.Provider != nil,
	})
}

func (s *APIV1Service) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, observability.GlobalMetrics().Export())
}
