package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"showcase/docs" // swagger docs
	"showcase/internal/asset"
	"showcase/internal/auth"
	"showcase/internal/config"
	"showcase/internal/db"
	"showcase/internal/handler"
	"showcase/internal/logger"
	"showcase/internal/metrics"
	"showcase/internal/repository"
	"showcase/internal/router"
	"showcase/internal/service"
)

// @title Showcase API
// @version 1.0
// @description Multi-user project showcase: accounts, projects with images, and comments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set: login and protected routes will fail until it is configured")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	storage, err := newStorage(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.AssetBackend).Msg("asset storage init")
	}

	m := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	assets := asset.NewManager(storage, cfg.MaxUploadBytes, log, m)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	projectService := service.NewProjectService(projectRepo, commentRepo, userRepo, assets, log)
	commentService := service.NewCommentService(commentRepo, projectRepo, userRepo)
	userService := service.NewUserService(userRepo, projectRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, log, m, jwtService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Project: handler.NewProjectHandler(projectService),
		Comment: handler.NewCommentHandler(commentService),
		User:    handler.NewUserHandler(userService),
		Upload:  handler.NewUploadHandler(assets),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("assets", cfg.AssetBackend).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

func newStorage(ctx context.Context, cfg *config.Config) (asset.Storage, error) {
	switch cfg.AssetBackend {
	case config.AssetBackendS3:
		return asset.NewS3Storage(ctx, asset.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case config.AssetBackendLocal, "":
		return asset.NewLocalStorage(cfg.UploadDir)
	default:
		return nil, errors.New("unknown ASSET_BACKEND " + cfg.AssetBackend)
	}
}
