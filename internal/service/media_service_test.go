package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/startupathon-api/internal/dto"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/jobs"
)

type mockObjectStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	deleted   []string
	putErr    error
	deleteErr error
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ref := "/uploads/" + key
	m.objects[ref] = body
	m.types[ref] = contentType
	return ref, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, ref)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, ref)
	return nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestMediaService(store *mockObjectStore) *MediaService {
	return NewMediaService(store, nil, MediaConfig{MaxFileSize: DefaultMaxUploadSize, PublicBaseURL: "http://localhost:5000/"}, NewMetricsService())
}

func TestMediaServiceIngestStoresImage(t *testing.T) {
	store := newMockObjectStore()
	svc := newTestMediaService(store)

	ref, err := svc.Ingest(context.Background(), ChallengeMediaFolder, dto.UploadFromBytes("Logo.JPG", "image/jpeg", []byte("jpeg")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/challenges/challenge-"), ref)
	assert.True(t, strings.HasSuffix(ref, ".jpg"), ref)
	assert.Equal(t, []byte("jpeg"), store.objects[ref])
	assert.Equal(t, "http://localhost:5000"+ref, svc.ResolveURL(ref))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.uploads.WithLabelValues(uploadStored)))
}

func TestMediaServiceIngestNilUpload(t *testing.T) {
	ref, err := newTestMediaService(newMockObjectStore()).Ingest(context.Background(), ChallengeMediaFolder, nil)
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestMediaServiceSizeBoundary(t *testing.T) {
	store := newMockObjectStore()
	svc := newTestMediaService(store)

	atLimit := bytes.Repeat([]byte{1}, int(DefaultMaxUploadSize))
	_, err := svc.Ingest(context.Background(), ChallengeMediaFolder, dto.UploadFromBytes("a.png", "image/png", atLimit))
	require.NoError(t, err)

	overLimit := bytes.Repeat([]byte{1}, int(DefaultMaxUploadSize)+1)
	_, err = svc.Ingest(context.Background(), ChallengeMediaFolder, dto.UploadFromBytes("b.png", "image/png", overLimit))
	assert.ErrorIs(t, err, appErrors.ErrFileTooLarge)
	assert.Len(t, store.objects, 1)
}

func TestMediaServiceRejectsNonImageBeforeSize(t *testing.T) {
	store := newMockObjectStore()
	svc := newTestMediaService(store)

	small := dto.UploadFromBytes("notes.txt", "text/plain", []byte("hello"))
	_, err := svc.Ingest(context.Background(), CompleterMediaFolder, small)
	assert.ErrorIs(t, err, appErrors.ErrInvalidUpload)

	huge := dto.UploadFromBytes("big.pdf", "application/pdf", bytes.Repeat([]byte{1}, int(DefaultMaxUploadSize)+10))
	_, err = svc.Ingest(context.Background(), CompleterMediaFolder, huge)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidUpload.Code, appErr.Code)
	assert.Equal(t, []string{"profilePicture"}, appErr.Fields)
	assert.Empty(t, store.objects)
}

func TestMediaServiceSniffsMissingContentType(t *testing.T) {
	store := newMockObjectStore()
	svc := newTestMediaService(store)

	ref, err := svc.Ingest(context.Background(), CompleterMediaFolder, dto.UploadFromBytes("avatar", "", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"), ref)
	assert.Equal(t, "image/png", store.types[ref])

	_, err = svc.Ingest(context.Background(), CompleterMediaFolder, dto.UploadFromBytes("script", "application/octet-stream", []byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, appErrors.ErrInvalidUpload)
}

func TestMediaServiceStoreFailure(t *testing.T) {
	store := newMockObjectStore()
	store.putErr = errors.New("disk full")
	svc := newTestMediaService(store)

	_, err := svc.Ingest(context.Background(), ChallengeMediaFolder, dto.UploadFromBytes("a.png", "image/png", pngHeader))
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestMediaServiceDiscardIsBestEffort(t *testing.T) {
	store := newMockObjectStore()
	store.deleteErr = errors.New("gone")
	svc := newTestMediaService(store)

	svc.Discard(context.Background(), "/uploads/challenges/x.png")
	svc.Discard(context.Background(), "")
	assert.Equal(t, []string{"/uploads/challenges/x.png"}, store.deleted)
}

type recordingQueue struct {
	kinds    []string
	payloads []string
	err      error
}

func (q *recordingQueue) Enqueue(kind, payload string) error {
	if q.err != nil {
		return q.err
	}
	q.kinds = append(q.kinds, kind)
	q.payloads = append(q.payloads, payload)
	return nil
}

func TestMediaServiceDiscardUsesCleanupQueue(t *testing.T) {
	store := newMockObjectStore()
	svc := newTestMediaService(store)
	queue := &recordingQueue{}
	svc.UseCleanupQueue(queue)

	svc.Discard(context.Background(), "/uploads/challenges/x.png")
	assert.Equal(t, []string{MediaDeleteJob}, queue.kinds)
	assert.Equal(t, []string{"/uploads/challenges/x.png"}, queue.payloads)
	assert.Empty(t, store.deleted)

	queue.err = jobs.ErrNotRunning
	svc.Discard(context.Background(), "/uploads/challenges/y.png")
	assert.Equal(t, []string{"/uploads/challenges/y.png"}, store.deleted)
}

func TestDeleteMediaHandler(t *testing.T) {
	store := newMockObjectStore()
	handle := DeleteMedia(store)

	require.NoError(t, handle(context.Background(), jobs.Job{Kind: "other", Payload: "/uploads/a.png"}))
	require.NoError(t, handle(context.Background(), jobs.Job{Kind: MediaDeleteJob, Payload: "/uploads/b.png"}))
	assert.Equal(t, []string{"/uploads/b.png"}, store.deleted)
}

func TestMediaServiceResolveURL(t *testing.T) {
	svc := newTestMediaService(newMockObjectStore())

	assert.Equal(t, "", svc.ResolveURL(""))
	assert.Equal(t, "https://cdn.example.com/a.png", svc.ResolveURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://localhost:5000/uploads/a.png", svc.ResolveURL("uploads/a.png"))
}
