package handler

import (
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LikeHandler struct {
	likeUC *usecase.LikeUsecase
}

func NewLikeHandler(likeUC *usecase.LikeUsecase) *LikeHandler {
	return &LikeHandler{likeUC: likeUC}
}

func (h *LikeHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.POST("/likes/toggle/v/:videoId", h.toggleVideo, authMW)
	g.POST("/likes/toggle/c/:commentId", h.toggleComment, authMW)
	g.GET("/likes/videos", h.likedVideos, authMW)
}

// POST /likes/toggle/v/:videoId
func (h *LikeHandler) toggleVideo(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.likeUC.ToggleVideoLike(c.Request().Context(), c.Param("videoId"), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "video like toggled successfully")
}

// POST /likes/toggle/c/:commentId
func (h *LikeHandler) toggleComment(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.likeUC.ToggleCommentLike(c.Request().Context(), c.Param("commentId"), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "comment like toggled successfully")
}

// GET /likes/videos
func (h *LikeHandler) likedVideos(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.likeUC.LikedVideos(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "liked videos fetched successfully")
}
