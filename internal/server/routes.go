package server

import (
	"vidtube/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Healthcheck  *handler.HealthcheckHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Dashboard    *handler.DashboardHandler
}

// RegisterRoutesは /api/v1 配下に全ルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers, authMW echo.MiddlewareFunc) {
	v1 := e.Group("/api/v1")

	h.Healthcheck.RegisterRoutes(v1)
	h.Auth.RegisterRoutes(v1, authMW)
	h.User.RegisterRoutes(v1, authMW)
	h.Video.RegisterRoutes(v1, authMW)
	h.Comment.RegisterRoutes(v1, authMW)
	h.Like.RegisterRoutes(v1, authMW)
	h.Subscription.RegisterRoutes(v1, authMW)
	h.Dashboard.RegisterRoutes(v1, authMW)
}
