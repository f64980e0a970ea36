package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository/memstore"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

type failingChallengeRepo struct {
	*memstore.ChallengeRepository
	createErr error
	listErr   error
}

func (f *failingChallengeRepo) List(ctx context.Context, filter models.VisibilityFilter) ([]models.Challenge, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ChallengeRepository.List(ctx, filter)
}

func (f *failingChallengeRepo) Create(ctx context.Context, c *models.Challenge) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.ChallengeRepository.Create(ctx, c)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validChallengeInput() dto.ChallengeInput {
	return dto.ChallengeInput{
		Title:       strPtr("Clean Water"),
		Funding:     strPtr("$50,000"),
		Deadline:    datePtr(2025, time.June, 30),
		Description: strPtr("Filter prototypes"),
	}
}

func newChallengeFixture() (*ChallengeService, *memstore.ChallengeRepository, *mockObjectStore) {
	repo := memstore.NewChallengeRepository()
	store := newMockObjectStore()
	return NewChallengeService(repo, newTestMediaService(store), nil, nil), repo, store
}

func TestChallengeServiceCreateDefaultsAndRoundTrip(t *testing.T) {
	svc, _, store := newChallengeFixture()
	ctx := context.Background()

	in := validChallengeInput()
	in.Image = dto.UploadFromBytes("cover.png", "image/png", pngHeader)
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, created.Visible)
	require.NotNil(t, created.Image)
	assert.Contains(t, store.objects, *created.Image)
	assert.Equal(t, "http://localhost:5000"+*created.Image, created.ImageURL)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean Water", got.Title)
	assert.Equal(t, "2025-06-30", got.Deadline.Format("2006-01-02"))
}

func TestChallengeServiceCreateMissingFields(t *testing.T) {
	svc, repo, _ := newChallengeFixture()

	_, err := svc.Create(context.Background(), dto.ChallengeInput{Title: strPtr("Only title")})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.ElementsMatch(t, []string{"funding", "deadline", "description"}, appErr.Fields)

	all, err := repo.List(context.Background(), models.VisibilityFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChallengeServiceCreateRejectsBadUploadWithoutPersisting(t *testing.T) {
	svc, repo, _ := newChallengeFixture()

	in := validChallengeInput()
	in.Image = dto.UploadFromBytes("doc.pdf", "application/pdf", []byte("%PDF"))
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, appErrors.ErrInvalidUpload)

	all, _ := repo.List(context.Background(), models.VisibilityFilter{})
	assert.Empty(t, all)
}

func TestChallengeServiceCreateDiscardsFileWhenInsertFails(t *testing.T) {
	store := newMockObjectStore()
	repo := &failingChallengeRepo{ChallengeRepository: memstore.NewChallengeRepository(), createErr: errors.New("insert failed")}
	svc := NewChallengeService(repo, newTestMediaService(store), nil, nil)

	in := validChallengeInput()
	in.Image = dto.UploadFromBytes("cover.png", "image/png", pngHeader)
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, store.objects)
	assert.Len(t, store.deleted, 1)
}

func TestChallengeServiceListReportsStoreTimeout(t *testing.T) {
	repo := &failingChallengeRepo{
		ChallengeRepository: memstore.NewChallengeRepository(),
		listErr:             fmt.Errorf("list challenges: %w", context.DeadlineExceeded),
	}
	svc := NewChallengeService(repo, newTestMediaService(newMockObjectStore()), nil, nil)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = svc.list(context.Background(), models.VisibilityFilter{VisibleOnly: true})
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}

func TestChallengeServiceListOtherFailureIsInternal(t *testing.T) {
	repo := &failingChallengeRepo{
		ChallengeRepository: memstore.NewChallengeRepository(),
		listErr:             errors.New("scan: unexpected column"),
	}
	svc := NewChallengeService(repo, newTestMediaService(newMockObjectStore()), nil, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestChallengeServiceUpdatePartialAndReplaceImage(t *testing.T) {
	svc, _, store := newChallengeFixture()
	ctx := context.Background()

	in := validChallengeInput()
	in.Image = dto.UploadFromBytes("old.png", "image/png", pngHeader)
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	oldRef := *created.Image

	updated, err := svc.Update(ctx, created.ID, dto.ChallengeInput{
		Visible: boolPtr(false),
		Image:   dto.UploadFromBytes("new.png", "image/png", pngHeader),
	})
	require.NoError(t, err)
	assert.False(t, updated.Visible)
	assert.Equal(t, "Clean Water", updated.Title)
	assert.NotEqual(t, oldRef, *updated.Image)
	assert.NotContains(t, store.objects, oldRef)
	assert.Contains(t, store.objects, *updated.Image)
}

func TestChallengeServiceUpdateErrors(t *testing.T) {
	svc, _, _ := newChallengeFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", dto.ChallengeInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	created, err := svc.Create(ctx, validChallengeInput())
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, dto.ChallengeInput{Title: strPtr("")})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"title"}, appErr.Fields)
}

func TestChallengeServiceDeleteIsIdempotent(t *testing.T) {
	svc, _, store := newChallengeFixture()
	ctx := context.Background()

	in := validChallengeInput()
	in.Image = dto.UploadFromBytes("cover.png", "image/png", pngHeader)
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, store.objects)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
