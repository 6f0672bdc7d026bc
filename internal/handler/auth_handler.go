package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"vidtube/internal/middleware"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

const refreshTokenCookie = "refreshToken"

type AuthHandler struct {
	authUC       *usecase.AuthUsecase
	accessTTL    time.Duration
	refreshTTL   time.Duration
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(authUC *usecase.AuthUsecase, accessTTL time.Duration, refreshTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authUC:       authUC,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		cookieSecure: cookieSecure,
	}
}

// 認証まわりのルートを登録
func (h *AuthHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.POST("/users/register", h.register)
	g.POST("/users/login", h.login)
	g.POST("/users/refresh-token", h.refresh)

	g.POST("/users/logout", h.logout, authMW)
	g.POST("/users/change-password", h.changePassword, authMW)
	g.GET("/users/current-user", h.currentUser, authMW)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// POST /users/register（multipart: avatar必須、coverImage任意）
func (h *AuthHandler) register(c echo.Context) error {
	in := usecase.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("fullName"),
		Password: c.FormValue("password"),
	}

	avatar, avatarClose, err := formFile(c, "avatar")
	if err == nil {
		defer avatarClose()
		in.Avatar = avatar
	}

	cover, coverClose, err := formFile(c, "coverImage")
	if err == nil {
		defer coverClose()
		in.CoverImage = cover
	}

	out, err := h.authUC.Register(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusCreated, out, "user registered successfully")
}

// POST /users/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	out, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
		IP:         c.RealIP(),
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookies(c, out.Tokens)

	return writeData(c, http.StatusOK, out, "user logged in successfully")
}

// POST /users/refresh-token（Cookie優先、なければbody）
func (h *AuthHandler) refresh(c echo.Context) error {
	presented := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.authUC.Refresh(c.Request().Context(), presented)
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookies(c, *pair)

	return writeData(c, http.StatusOK, pair, "access token refreshed")
}

// POST /users/logout
func (h *AuthHandler) logout(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	out, err := h.authUC.Logout(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	h.clearAuthCookies(c)

	return writeData(c, http.StatusOK, out, "user logged out")
}

// POST /users/change-password
func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}

	out, err := h.authUC.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, out, "password changed successfully")
}

// GET /users/current-user
func (h *AuthHandler) currentUser(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return writeError(c, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	}

	return writeData(c, http.StatusOK, user, "user fetched successfully")
}

// アクセス/リフレッシュ両方のCookieをセット
func (h *AuthHandler) setAuthCookies(c echo.Context, pair usecase.TokenPair) {
	c.SetCookie(h.authCookie(middleware.AccessTokenCookie, pair.AccessToken, h.accessTTL))
	c.SetCookie(h.authCookie(refreshTokenCookie, pair.RefreshToken, h.refreshTTL))
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(h.authCookie(middleware.AccessTokenCookie, "", -time.Hour))
	c.SetCookie(h.authCookie(refreshTokenCookie, "", -time.Hour))
}

// クライアントスクリプトから読めないCookie
func (h *AuthHandler) authCookie(name string, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	}
}

// multipartからFileInputを取り出す
func formFile(c echo.Context, field string) (*usecase.FileInput, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &usecase.FileInput{Reader: f, Filename: fh.Filename}, closeFunc(f), nil
}

func closeFunc(f multipart.File) func() {
	return func() { _ = f.Close() }
}
