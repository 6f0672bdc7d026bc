package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	commentUC *usecase.CommentUsecase
}

func NewCommentHandler(commentUC *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{commentUC: commentUC}
}

func (h *CommentHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.GET("/comments/:videoId", h.list, authMW)
	g.POST("/comments/:videoId", h.add, authMW)
	g.PATCH("/comments/c/:commentId", h.update, authMW)
	g.DELETE("/comments/c/:commentId", h.delete, authMW)
}

type commentRequest struct {
	Content string `json:"content"`
}

// GET /comments/:videoId
func (h *CommentHandler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.commentUC.ListByVideo(c.Request().Context(), c.Param("videoId"), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "comments fetched successfully")
}

// POST /comments/:videoId
func (h *CommentHandler) add(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}

	out, err := h.commentUC.Add(c.Request().Context(), c.Param("videoId"), user.ID, req.Content)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusCreated, out, "comment added successfully")
}

// PATCH /comments/c/:commentId
func (h *CommentHandler) update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}

	out, err := h.commentUC.Update(c.Request().Context(), c.Param("commentId"), user.ID, req.Content)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "comment updated successfully")
}

// DELETE /comments/c/:commentId
func (h *CommentHandler) delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.commentUC.Delete(c.Request().Context(), c.Param("commentId"), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "comment deleted successfully")
}
