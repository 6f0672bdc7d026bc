package handler

import (
	"context"
	"net/http"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUC *usecase.UserUsecase
}

func NewUserHandler(userUC *usecase.UserUsecase) *UserHandler {
	return &UserHandler{userUC: userUC}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.PATCH("/users/update-account", h.updateAccount, authMW)
	g.PATCH("/users/avatar", h.updateAvatar, authMW)
	g.PATCH("/users/cover-image", h.updateCoverImage, authMW)
	g.GET("/users/c/:username", h.channelProfile, authMW)
	g.GET("/users/history", h.watchHistory, authMW)
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// PATCH /users/update-account
func (h *UserHandler) updateAccount(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}

	out, err := h.userUC.UpdateAccount(c.Request().Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "account details updated successfully")
}

// PATCH /users/avatar（multipart）
func (h *UserHandler) updateAvatar(c echo.Context) error {
	return h.updateImage(c, "avatar", h.userUC.UpdateAvatar, "avatar image updated successfully")
}

// PATCH /users/cover-image（multipart）
func (h *UserHandler) updateCoverImage(c echo.Context) error {
	return h.updateImage(c, "coverImage", h.userUC.UpdateCoverImage, "cover image updated successfully")
}

func (h *UserHandler) updateImage(
	c echo.Context,
	field string,
	update func(ctx context.Context, userID string, file usecase.FileInput) (*usecase.UserDTO, error),
	message string,
) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	file, closeFile, err := formFile(c, field)
	if err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, field+" file is missing"))
	}
	defer closeFile()

	out, err := update(c.Request().Context(), user.ID, *file)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, message)
}

// GET /users/c/:username
func (h *UserHandler) channelProfile(c echo.Context) error {
	viewer, _ := middleware.CurrentUser(c)

	out, err := h.userUC.ChannelProfile(c.Request().Context(), c.Param("username"), viewer.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "user channel fetched successfully")
}

// GET /users/history
func (h *UserHandler) watchHistory(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.userUC.WatchHistory(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "watch history fetched successfully")
}
