package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"vidtube/internal/config"
	"vidtube/internal/domain/model"
	"vidtube/internal/handler"
	"vidtube/internal/infra/db"
	infraRepo "vidtube/internal/infra/repository"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/observability"
	"vidtube/internal/rate"
	"vidtube/internal/server"
	"vidtube/internal/token"
	"vidtube/internal/usecase"
	"vidtube/internal/validator"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envは任意（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := observability.InitSentry(cfg.SentryDSN, cfg.GoEnv); err != nil {
		log.Fatalf("sentry: %v", err)
	}
	defer observability.FlushSentry()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.WatchHistory{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	videoRepo := infraRepo.NewVideoGormRepository(gormDB)
	commentRepo := infraRepo.NewCommentGormRepository(gormDB)
	likeRepo := infraRepo.NewLikeGormRepository(gormDB)
	subRepo := infraRepo.NewSubscriptionGormRepository(gormDB)
	historyRepo := infraRepo.NewWatchHistoryGormRepository(gormDB)

	//トークンサービス（アクセス/リフレッシュで鍵とTTLを分ける）
	tokens := token.NewService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	//Cloudinary
	uploader, err := media.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	//レートリミッタ（Redisなし構成ではnilのまま＝制限なし）
	var limiter *rate.Limiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = rate.New(redisClient, rate.DefaultConfig())
	}

	//Usecase生成
	authValidator := validator.NewAuthValidator()
	authUC := usecase.NewAuthUsecase(userRepo, tokens, uploader, limiter, authValidator)
	userUC := usecase.NewUserUsecase(userRepo, subRepo, historyRepo, uploader)
	videoUC := usecase.NewVideoUsecase(videoRepo, likeRepo, historyRepo, uploader)
	commentUC := usecase.NewCommentUsecase(commentRepo, videoRepo)
	likeUC := usecase.NewLikeUsecase(likeRepo, videoRepo, commentRepo)
	subUC := usecase.NewSubscriptionUsecase(subRepo, userRepo)
	dashUC := usecase.NewDashboardUsecase(videoRepo, likeRepo, subRepo)

	//セッションミドルウェア
	authMW := middleware.AuthJWT(tokens, userRepo)

	cookieSecure := cfg.GoEnv != "dev"

	handlers := server.Handlers{
		Healthcheck:  handler.NewHealthcheckHandler(),
		Auth:         handler.NewAuthHandler(authUC, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cookieSecure),
		User:         handler.NewUserHandler(userUC),
		Video:        handler.NewVideoHandler(videoUC),
		Comment:      handler.NewCommentHandler(commentUC),
		Like:         handler.NewLikeHandler(likeUC),
		Subscription: handler.NewSubscriptionHandler(subUC),
		Dashboard:    handler.NewDashboardHandler(dashUC),
	}

	e := server.New(cfg, handlers, authMW)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, e, cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
