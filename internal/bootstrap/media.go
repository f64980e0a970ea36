package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/service"
	"github.com/noah-isme/startupathon-api/pkg/config"
	"github.com/noah-isme/startupathon-api/pkg/jobs"
	"github.com/noah-isme/startupathon-api/pkg/storage"
)

// Media is the object store selected by MEDIA_DRIVER. Local is set only for the disk
// backend, whose files the HTTP server must serve itself. Cleanup deletes replaced
// files in the background once started; it is nil in tests.
type Media struct {
	Store   storage.ObjectStore
	Local   *storage.LocalStorage
	Cleanup *jobs.Queue
}

func withCleanup(m *Media, logger *zap.Logger) *Media {
	m.Cleanup = jobs.NewQueue("media-cleanup", service.DeleteMedia(m.Store), jobs.QueueConfig{
		Workers:    2,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Logger:     logger,
	})
	return m
}

// OpenMedia prepares the configured media backend.
func OpenMedia(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Media, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Media.Driver {
	case config.MediaLocal, "":
		local, err := storage.NewLocalStorage(cfg.Media.UploadsDir, "/uploads")
		if err != nil {
			return nil, err
		}
		logger.Info("media stored on local disk", zap.String("dir", local.BaseDir()))
		return withCleanup(&Media{Store: local, Local: local}, logger), nil
	case config.MediaMinIO:
		minio, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("open minio: %w", err)
		}
		logger.Info("media stored in object storage", zap.String("endpoint", cfg.MinIO.Endpoint), zap.String("bucket", cfg.MinIO.Bucket))
		return withCleanup(&Media{Store: minio}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported MEDIA_DRIVER %q", cfg.Media.Driver)
	}
}
