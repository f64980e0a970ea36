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
	"github.com/noah-isme/startupathon-api/internal/repository"
	"github.com/noah-isme/startupathon-api/internal/repository/memstore"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// racingSubscriberRepo reports no existing email but then loses the insert to a unique index.
type racingSubscriberRepo struct {
	*memstore.SubscriberRepository
}

func (r racingSubscriberRepo) ExistsByEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r racingSubscriberRepo) Create(context.Context, *models.Subscriber) error {
	return fmt.Errorf("insert subscriber: %w", repository.ErrDuplicate)
}

func TestSubscriberServiceCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	repo := memstore.NewSubscriberRepository()
	svc := NewSubscriberService(repo, nil, nil)
	ctx := context.Background()

	sub, err := svc.Create(ctx, dto.SubscriberRequest{Email: "  Jane@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sub.Email)
	assert.False(t, sub.SubscriptionDate.IsZero())

	_, err = svc.Create(ctx, dto.SubscriberRequest{Email: "JANE@example.com"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
	assert.Equal(t, "Email already subscribed", appErr.Message)

	_, total, err := repo.List(ctx, models.SubscriberFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSubscriberServiceCreateValidation(t *testing.T) {
	svc := NewSubscriberService(memstore.NewSubscriberRepository(), nil, nil)

	_, err := svc.Create(context.Background(), dto.SubscriberRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	for _, email := range []string{"plainaddress", "a@b", "a@b.toolong", "a@@b.com"} {
		_, err := svc.Create(context.Background(), dto.SubscriberRequest{Email: email})
		assert.ErrorIs(t, err, appErrors.ErrValidation, email)
	}
}

func TestSubscriberServiceCreateMapsRaceToDuplicate(t *testing.T) {
	svc := NewSubscriberService(racingSubscriberRepo{memstore.NewSubscriberRepository()}, nil, nil)

	_, err := svc.Create(context.Background(), dto.SubscriberRequest{Email: "race@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateEmail)
}

func TestSubscriberServiceListPagesAndSearch(t *testing.T) {
	repo := memstore.NewSubscriberRepository()
	svc := NewSubscriberService(repo, nil, nil)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, &models.Subscriber{
			Email:            fmt.Sprintf("user%02d@example.com", i),
			SubscriptionDate: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	page1, pagination, err := svc.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, "user11@example.com", page1[0].Email)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 10, TotalCount: 12, TotalPages: 2}, pagination)

	page2, _, err := svc.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	found, pagination, err := svc.List(ctx, "USER0", 1)
	require.NoError(t, err)
	assert.Len(t, found, 10)
	assert.Equal(t, 10, pagination.TotalCount)
}

func TestSubscriberServiceUpdate(t *testing.T) {
	svc := NewSubscriberService(memstore.NewSubscriberRepository(), nil, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.SubscriberRequest{Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.SubscriberRequest{Email: "b@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, dto.SubscriberRequest{Email: "b@example.com"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Email already exists", appErr.Message)

	same, err := svc.Update(ctx, a.ID, dto.SubscriberRequest{Email: "A@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", same.Email)

	_, err = svc.Update(ctx, "missing", dto.SubscriberRequest{Email: "c@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSubscriberServiceDeleteUnknown(t *testing.T) {
	svc := NewSubscriberService(memstore.NewSubscriberRepository(), nil, nil)
	ctx := context.Background()

	sub, err := svc.Create(ctx, dto.SubscriberRequest{Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, sub.ID))
	assert.ErrorIs(t, svc.Delete(ctx, sub.ID), appErrors.ErrNotFound)
}

func TestSubscriberServiceExport(t *testing.T) {
	svc := NewSubscriberService(memstore.NewSubscriberRepository(), nil, nil)
	ctx := context.Background()
	for _, email := range []string{"ann@example.com", "bob@example.com", "anna@example.org"} {
		_, err := svc.Create(ctx, dto.SubscriberRequest{Email: email})
		require.NoError(t, err)
	}

	data, err := svc.Export(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, []string{"Email", "Subscription Date"}, data.Headers)
	require.Len(t, data.Rows, 2)
	emails := []string{data.Rows[0][0], data.Rows[1][0]}
	assert.ElementsMatch(t, []string{"ann@example.com", "anna@example.org"}, emails)
}
