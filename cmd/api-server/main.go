package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/httpapi"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The rating cache is an optimization; a missing Redis only costs extra
	// aggregate queries.
	ratingCache, err := service.NewRatingCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RatingCacheTTL)
	if err != nil {
		logger.Warn("rating cache unavailable, serving ratings without cache", "error", err)
		ratingCache = nil
	}

	mailer := service.NewSMTPMailer(cfg)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	svc := httpapi.Services{
		Auth:     service.NewAuthService(userRepo, mailer, logger, cfg),
		User:     service.NewUserService(userRepo),
		Category: service.NewCategoryService(categoryRepo),
		Genre:    service.NewGenreService(genreRepo),
		Title:    service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, ratingCache),
		Review:   service.NewReviewService(reviewRepo, titleRepo, ratingCache),
		Comment:  service.NewCommentService(commentRepo, reviewRepo),
	}

	r := httpapi.SetupRouter(cfg, svc)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
