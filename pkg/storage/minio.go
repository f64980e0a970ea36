package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/noah-isme/startupathon-api/pkg/config"
)

// MinIOStorage stores media in an S3-compatible bucket and references objects by URL.
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	folder  string
	baseURL string
}

// NewMinIOStorage creates the client and makes sure the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	s, err := newMinIOStorage(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return s, nil
}

func newMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		endpoint := client.EndpointURL()
		baseURL = fmt.Sprintf("%s://%s/%s", endpoint.Scheme, endpoint.Host, cfg.Bucket)
	}

	return &MinIOStorage{
		client:  client,
		bucket:  cfg.Bucket,
		folder:  strings.Trim(cfg.Folder, "/"),
		baseURL: baseURL,
	}, nil
}

// Put uploads r under <folder>/<key> and returns the object's public URL.
func (s *MinIOStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.urlFor(objectKey), nil
}

// Delete removes the object a reference points at.
func (s *MinIOStorage) Delete(ctx context.Context, ref string) error {
	objectKey, ok := s.keyFromRef(ref)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinIOStorage) objectKey(key string) (string, error) {
	key = strings.Trim(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	if s.folder == "" {
		return key, nil
	}
	return s.folder + "/" + key, nil
}

func (s *MinIOStorage) urlFor(objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

func (s *MinIOStorage) keyFromRef(ref string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	escaped := strings.TrimPrefix(ref, prefix)
	key, err := url.PathUnescape(escaped)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
