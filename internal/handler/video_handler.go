package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type VideoHandler struct {
	videoUC *usecase.VideoUsecase
}

func NewVideoHandler(videoUC *usecase.VideoUsecase) *VideoHandler {
	return &VideoHandler{videoUC: videoUC}
}

func (h *VideoHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.GET("/videos", h.list, authMW)
	g.POST("/videos", h.publish, authMW)
	g.GET("/videos/:videoId", h.detail, authMW)
	g.PATCH("/videos/:videoId", h.update, authMW)
	g.DELETE("/videos/:videoId", h.delete, authMW)
	g.PATCH("/videos/toggle/publish/:videoId", h.togglePublish, authMW)
}

// GET /videos
func (h *VideoHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid page"))
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid limit"))
		}
		limit = l
	}

	out, err := h.videoUC.List(c.Request().Context(), usecase.ListVideosInput{
		Page:    page,
		Limit:   limit,
		Query:   c.QueryParam("query"),
		OwnerID: c.QueryParam("userId"),
		SortBy:  c.QueryParam("sortBy"),
		SortAsc: c.QueryParam("sortType") == "asc",
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "videos fetched successfully")
}

// POST /videos（multipart: videoFile + thumbnail）
func (h *VideoHandler) publish(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	in := usecase.PublishVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	videoFile, videoClose, err := formFile(c, "videoFile")
	if err == nil {
		defer videoClose()
		in.VideoFile = videoFile
	}

	thumb, thumbClose, err := formFile(c, "thumbnail")
	if err == nil {
		defer thumbClose()
		in.Thumbnail = thumb
	}

	out, err := h.videoUC.Publish(c.Request().Context(), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusCreated, out, "video published successfully")
}

// GET /videos/:videoId
func (h *VideoHandler) detail(c echo.Context) error {
	viewer, _ := middleware.CurrentUser(c)

	out, err := h.videoUC.Get(c.Request().Context(), c.Param("videoId"), viewer.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "video fetched successfully")
}

// PATCH /videos/:videoId
func (h *VideoHandler) update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	in := usecase.UpdateVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	thumb, thumbClose, err := formFile(c, "thumbnail")
	if err == nil {
		defer thumbClose()
		in.Thumbnail = thumb
	}

	out, err := h.videoUC.Update(c.Request().Context(), c.Param("videoId"), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "video updated successfully")
}

// DELETE /videos/:videoId
func (h *VideoHandler) delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.videoUC.Delete(c.Request().Context(), c.Param("videoId"), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "video deleted successfully")
}

// PATCH /videos/toggle/publish/:videoId
func (h *VideoHandler) togglePublish(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.videoUC.TogglePublish(c.Request().Context(), c.Param("videoId"), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "publish status toggled successfully")
}
