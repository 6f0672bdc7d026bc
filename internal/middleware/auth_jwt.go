package middleware

import (
	"net/http"
	"strings"

	"vidtube/internal/repository"
	"vidtube/internal/token"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	// 検証済みユーザー（usecase.UserDTO）
	CtxUserKey = "current_user"
	// アクセストークンを入れるCookie名
	AccessTokenCookie = "accessToken"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// AuthJWTはアクセストークン検証ミドルウェア。
// Cookie → Authorization: Bearer の順でトークンを探し、検証に通った
// ユーザーをcontextに載せる。失敗したらhandlerには到達させない
func AuthJWT(tokens *token.Service, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return unauthorized(c, "unauthorized request")
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				return unauthorized(c, "invalid access token")
			}

			//発行後に削除されたユーザーを弾く
			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return unauthorized(c, "invalid access token")
			}

			//secretsを落としてcontextへ保存
			c.Set(CtxUserKey, usecase.UserDTO{
				ID:         user.ID,
				Username:   user.Username,
				Email:      user.Email,
				FullName:   user.FullName,
				Avatar:     user.Avatar,
				CoverImage: user.CoverImage,
			})

			return next(c)
		}
	}
}

// extractTokenはCookie優先、なければBearerヘッダ
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// CurrentUserは検証済みユーザーを取り出す。downstreamはトークンを再検証しない
func CurrentUser(c echo.Context) (usecase.UserDTO, bool) {
	user, ok := c.Get(CtxUserKey).(usecase.UserDTO)
	return user, ok
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
	})
}
