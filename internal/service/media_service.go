package service

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/jobs"
	"github.com/noah-isme/startupathon-api/pkg/storage"
)

// Media folders, one per resource that accepts an image.
const (
	ChallengeMediaFolder = "challenges"
	CompleterMediaFolder = "completers"
)

// DefaultMaxUploadSize is the upload ceiling applied when none is configured.
const DefaultMaxUploadSize int64 = 3 * 1024 * 1024

// MediaConfig bounds uploads and addresses stored files.
type MediaConfig struct {
	MaxFileSize   int64
	PublicBaseURL string
}

// MediaDeleteJob is the job kind a cleanup queue receives from Discard; its payload is the reference.
const MediaDeleteJob = "media.delete"

// CleanupQueue accepts deletions to perform in the background.
type CleanupQueue interface {
	Enqueue(kind, payload string) error
}

// MediaService validates uploaded images and hands them to the object store.
type MediaService struct {
	store   storage.ObjectStore
	logger  *zap.Logger
	config  MediaConfig
	metrics *MetricsService
	cleanup CleanupQueue
	now     func() time.Time
}

// NewMediaService constructs a MediaService. metrics may be nil.
func NewMediaService(store storage.ObjectStore, logger *zap.Logger, config MediaConfig, metrics *MetricsService) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = DefaultMaxUploadSize
	}
	config.PublicBaseURL = strings.TrimRight(config.PublicBaseURL, "/")
	return &MediaService{store: store, logger: logger, config: config, metrics: metrics, now: time.Now}
}

// Ingest stores upload under folder and returns its reference. A nil upload yields "".
// The content type is checked before the size.
func (s *MediaService) Ingest(ctx context.Context, folder string, upload *dto.Upload) (string, error) {
	if upload == nil {
		return "", nil
	}

	contentType, err := s.contentType(upload)
	if err != nil {
		s.metrics.RecordUpload(uploadFailed, upload.Size)
		return "", internalError(err, "failed to read upload")
	}
	if !strings.HasPrefix(contentType, "image/") {
		s.metrics.RecordUpload(uploadRejected, upload.Size)
		return "", appErrors.WithFields(appErrors.ErrInvalidUpload, "Only image files are allowed", fieldForFolder(folder))
	}
	if upload.Size > s.config.MaxFileSize {
		s.metrics.RecordUpload(uploadRejected, upload.Size)
		return "", appErrors.WithFields(appErrors.ErrFileTooLarge,
			fmt.Sprintf("File size exceeds the %s limit", dto.SizeLabel(s.config.MaxFileSize)), fieldForFolder(folder))
	}

	rc, err := upload.Open()
	if err != nil {
		s.metrics.RecordUpload(uploadFailed, upload.Size)
		return "", internalError(err, "failed to read upload")
	}
	defer rc.Close()

	key := path.Join(folder, s.filename(folder, upload.Filename, contentType))
	ref, err := s.store.Put(ctx, key, rc, upload.Size, contentType)
	if err != nil {
		s.metrics.RecordUpload(uploadFailed, upload.Size)
		return "", internalError(err, "failed to store upload")
	}

	s.metrics.RecordUpload(uploadStored, upload.Size)
	s.logger.Debug("media stored", zap.String("ref", ref), zap.Int64("size", upload.Size))
	return ref, nil
}

// UseCleanupQueue routes Discard through q. Deletions fall back to running inline
// whenever q refuses a job.
func (s *MediaService) UseCleanupQueue(q CleanupQueue) {
	s.cleanup = q
}

// Discard removes a stored file. Failures are logged and otherwise ignored.
func (s *MediaService) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if s.cleanup != nil {
		err := s.cleanup.Enqueue(MediaDeleteJob, ref)
		if err == nil {
			return
		}
		s.logger.Debug("cleanup queue unavailable, deleting inline", zap.Error(err))
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		s.logger.Warn("failed to delete media", zap.String("ref", ref), zap.Error(err))
	}
}

// DeleteMedia is the cleanup queue handler for MediaDeleteJob.
func DeleteMedia(store storage.ObjectStore) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		if job.Kind != MediaDeleteJob {
			return nil
		}
		return store.Delete(ctx, job.Payload)
	}
}

// ResolveURL turns a stored reference into an absolute URL.
func (s *MediaService) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return s.config.PublicBaseURL + ref
}

func (s *MediaService) decorateChallenge(c *models.Challenge) {
	if c.Image != nil {
		c.ImageURL = s.ResolveURL(*c.Image)
	}
}

func (s *MediaService) decorateCompleter(c *models.Completer) {
	if c.ProfilePicture != nil {
		c.ProfilePictureURL = s.ResolveURL(*c.ProfilePicture)
	}
}

func (s *MediaService) contentType(upload *dto.Upload) (string, error) {
	declared := upload.ContentType
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mediaType
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared), nil
	}

	rc, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	detected, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", err
	}
	mediaType, _, _ := mime.ParseMediaType(detected.String())
	return mediaType, nil
}

func (s *MediaService) filename(folder, original, contentType string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		if m := mimetype.Lookup(contentType); m != nil {
			ext = m.Extension()
		}
	}
	prefix := strings.TrimSuffix(folder, "s")
	return fmt.Sprintf("%s-%d-%s%s", prefix, s.now().UnixMilli(), uuid.NewString(), ext)
}

func fieldForFolder(folder string) string {
	if folder == CompleterMediaFolder {
		return "profilePicture"
	}
	return "image"
}
