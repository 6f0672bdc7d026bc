package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	subUC *usecase.SubscriptionUsecase
}

func NewSubscriptionHandler(subUC *usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{subUC: subUC}
}

func (h *SubscriptionHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.POST("/subscriptions/c/:channelId", h.toggle, authMW)
	g.GET("/subscriptions/c/:channelId", h.subscribers, authMW)
	g.GET("/subscriptions/u", h.subscribedChannels, authMW)
}

// POST /subscriptions/c/:channelId
func (h *SubscriptionHandler) toggle(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.subUC.Toggle(c.Request().Context(), user.ID, c.Param("channelId"))
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "subscription toggled successfully")
}

// GET /subscriptions/c/:channelId
func (h *SubscriptionHandler) subscribers(c echo.Context) error {
	out, err := h.subUC.Subscribers(c.Request().Context(), c.Param("channelId"))
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "subscribers fetched successfully")
}

// GET /subscriptions/u
func (h *SubscriptionHandler) subscribedChannels(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.subUC.SubscribedChannels(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "subscribed channels fetched successfully")
}
