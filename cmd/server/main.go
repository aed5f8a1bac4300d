package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api"
	"github.com/MelDxKviel/reels-downloader-bot/internal/api/handler"
	"github.com/MelDxKviel/reels-downloader-bot/internal/cache"
	"github.com/MelDxKviel/reels-downloader-bot/internal/config"
	"github.com/MelDxKviel/reels-downloader-bot/internal/extractor"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
	"github.com/MelDxKviel/reels-downloader-bot/internal/service"
	"github.com/MelDxKviel/reels-downloader-bot/internal/worker"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("reels-downloader-bot %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting reels-downloader-bot",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open the cache store (creates the download directory)
	store, err := cache.Open(cfg.Storage.DownloadDir, logger)
	if err != nil {
		logger.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Open the database
	db, err := repository.OpenDB(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Ensure the extraction binary is available. Startup continues on
	// failure; individual downloads will surface the error.
	installCtx, cancelInstall := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := extractor.Install(installCtx); err != nil {
		logger.Warn("yt-dlp install failed, downloads may not work", "error", err)
	}
	cancelInstall()

	// Initialize repositories
	jobRepo := repository.NewInMemoryJobRepository()
	userRepo := repository.NewSQLiteUserRepository(db)
	statsRepo := repository.NewSQLiteStatsRepository(db)

	// Initialize the extraction adapter
	adapter := extractor.NewAdapter(
		extractor.NewYTDLPExtractor(),
		cfg.Storage,
		cfg.Download,
		logger,
	)

	// Initialize services
	downloadSvc := service.NewDownloadService(store, adapter, jobRepo, logger)
	statsSvc := service.NewStatsService(statsRepo, logger)
	userSvc := service.NewUserService(userRepo, cfg.Admin, logger)

	// Initialize handlers
	downloadHandler := handler.NewDownloadHandler(downloadSvc, logger)
	adminHandler := handler.NewAdminHandler(userSvc, statsSvc, logger)
	cacheHandler := handler.NewCacheHandler(store, logger)
	healthHandler := handler.NewHealthHandler(jobRepo)

	// Setup router
	router := api.NewRouter(
		downloadHandler,
		adminHandler,
		cacheHandler,
		healthHandler,
		userSvc,
		cfg.Server.APIKey,
	)

	// Initialize worker pool
	pool := worker.NewPool(
		worker.Config{
			Workers:      cfg.Worker.Count,
			PollInterval: cfg.Worker.PollInterval,
		},
		jobRepo,
		downloadSvc,
		statsSvc,
		logger,
	)
	pool.Start()

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting new requests
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Stop workers; in-flight downloads are cancelled via the pool context
	if err := pool.Stop(25 * time.Second); err != nil {
		logger.Error("worker pool shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
