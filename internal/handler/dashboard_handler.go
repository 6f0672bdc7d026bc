package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashUC *usecase.DashboardUsecase
}

func NewDashboardHandler(dashUC *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashUC: dashUC}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.GET("/dashboard/stats", h.stats, authMW)
	g.GET("/dashboard/videos", h.videos, authMW)
}

// GET /dashboard/stats
func (h *DashboardHandler) stats(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.dashUC.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "channel stats fetched successfully")
}

// GET /dashboard/videos
func (h *DashboardHandler) videos(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.dashUC.Videos(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "channel videos fetched successfully")
}
