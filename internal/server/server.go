package server

import (
	"context"
	"net/http"
	"time"

	"vidtube/internal/config"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoインスタンスを組み立てる（ミドルウェアチェーン＋ルート登録）
func New(cfg config.Config, handlers Handlers, authMW echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("100M"))

	if cfg.CORSOrigin != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowCredentials: true,
		}))
	}

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	RegisterRoutes(e, handlers, authMW)

	return e
}

// Startはサーバーを起動し、ctxのキャンセルでgraceful shutdownする
func Start(ctx context.Context, e *echo.Echo, port string) error {
	errCh := make(chan error, 1)

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
