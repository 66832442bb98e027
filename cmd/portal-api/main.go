package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"carbon-scribe/project-portal/methodology-engine/internal/config"
	"carbon-scribe/project-portal/methodology-engine/internal/matching"
	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		bootstrap, _ := zap.NewDevelopment()
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load methodology catalog
	catalog, err := methodology.LoadCatalog(cfg.Matching.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load methodology catalog", zap.Error(err))
	}
	logger.Info("Methodology catalog loaded",
		zap.String("path", cfg.Matching.CatalogPath),
		zap.Int("methodologies", catalog.Len()))

	defaultMode, err := methodology.ParseMode(cfg.Matching.DefaultMode)
	if err != nil {
		logger.Fatal("Invalid default matching mode", zap.Error(err))
	}

	// Initialize Matching Module
	matcher := methodology.NewMatcher(catalog, methodology.WithLogger(logger.Named("matcher")))
	matchingService := matching.NewService(matcher, logger,
		matching.WithDefaultMode(defaultMode),
		matching.WithCacheTTL(cfg.Matching.CacheTTL.Std()))
	defer matchingService.Close()
	matchingHandler := matching.NewHandler(matchingService, logger)

	// Setup Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), matching.RequestID(), matching.AccessLog(logger), matching.CORS())

	// Register Routes
	api := router.Group("/api/v1")
	{
		matchingHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"methodologies": catalog.Len(),
			"timestamp":     time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
