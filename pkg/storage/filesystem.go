package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage persists files on disk under a base directory that the HTTP layer serves
// at URLPrefix.
type LocalStorage struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, urlPrefix string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// BaseDir is the directory mounted as static content.
func (s *LocalStorage) BaseDir() string { return s.baseDir }

// URLPrefix is the path the static mount answers on.
func (s *LocalStorage) URLPrefix() string { return s.urlPrefix }

// Put copies r into baseDir/key through a temporary file so readers never see a partial image.
func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod upload file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("publish upload file: %w", err)
	}

	return path.Join(s.urlPrefix, filepath.ToSlash(cleanKey(key))), nil
}

// Open returns a read-only handle for a reference issued by Put.
func (s *LocalStorage) Open(ref string) (*os.File, error) {
	key, ok := s.keyFromRef(ref)
	if !ok {
		return nil, ErrInvalidKey
	}
	target, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(_ context.Context, ref string) error {
	key, ok := s.keyFromRef(ref)
	if !ok {
		return nil
	}
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

func (s *LocalStorage) keyFromRef(ref string) (string, bool) {
	prefix := s.urlPrefix + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, prefix), true
}

func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := cleanKey(key)
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

func cleanKey(key string) string {
	return filepath.Clean(filepath.FromSlash(strings.TrimLeft(key, "/")))
}
