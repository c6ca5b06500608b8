package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/binder-binFinder/binder-back-end/database"
	"github.com/binder-binFinder/binder-back-end/internal/api/handler"
	"github.com/binder-binFinder/binder-back-end/internal/api/middleware"
	"github.com/binder-binFinder/binder-back-end/internal/api/repository"
	"github.com/binder-binFinder/binder-back-end/internal/api/service"
	"github.com/binder-binFinder/binder-back-end/internal/config"
	"github.com/binder-binFinder/binder-back-end/internal/filtering"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.ConnectRedis(cfg, logger)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	curseWords, err := loadCurseWords(cfg.CurseWordsPath)
	if err != nil {
		logger.Error("could not load curse word list", "path", cfg.CurseWordsPath, "error", err)
		os.Exit(1)
	}
	checker := filtering.NewWordFilter(curseWords, redisClient, cfg.FilterCacheTTL)

	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	binRepo := repository.NewBinRepository(db)
	txManager := repository.NewTxManager(db)

	commentService := service.NewCommentService(commentRepo, reactionRepo, binRepo, txManager, checker)
	commentHandler := handler.NewCommentHandler(commentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	public := api.Group("")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	commentHandler.RegisterRoutes(public, authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

// loadCurseWords reads the banned word list, one word per line, with
// blank lines and #-comments skipped.
func loadCurseWords(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}
