package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/bootstrap"
	"github.com/noah-isme/startupathon-api/internal/server"
	"github.com/noah-isme/startupathon-api/internal/service"
	"github.com/noah-isme/startupathon-api/pkg/config"
	"github.com/noah-isme/startupathon-api/pkg/logger"
)

// @title Startupathon API
// @version 1.0.0
// @description Admin content API for challenges, completers, subscribers and founders.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.Error(err))
	}
	media, err := bootstrap.OpenMedia(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open media storage", zap.Error(err))
	}

	if media.Cleanup != nil {
		media.Cleanup.Start(context.Background())
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	router := server.NewRouter(server.Options{
		Config:  cfg,
		Logger:  logr,
		Store:   store,
		Media:   media,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("db_driver", store.Driver),
			zap.String("media_driver", cfg.Media.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
	if media.Cleanup != nil {
		media.Cleanup.Stop()
	}
	if store.Close != nil {
		if err := store.Close(shutdownCtx); err != nil {
			logr.Warn("close store", zap.Error(err))
		}
	}
	logr.Info("server stopped")
}
