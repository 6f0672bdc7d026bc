package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthcheckHandler struct{}

func NewHealthcheckHandler() *HealthcheckHandler {
	return &HealthcheckHandler{}
}

func (h *HealthcheckHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/healthcheck", h.healthcheck)
}

func (h *HealthcheckHandler) healthcheck(c echo.Context) error {
	return writeData(c, http.StatusOK, map[string]string{"status": "ok"}, "everything is fine")
}
