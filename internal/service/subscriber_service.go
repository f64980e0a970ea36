package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/export"
)

var subscriberEmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// SubscriberService manages newsletter subscribers for both the public form and the admin.
type SubscriberService struct {
	repo      SubscriberRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubscriberService constructs a SubscriberService.
func NewSubscriberService(repo SubscriberRepository, validate *validator.Validate, logger *zap.Logger) *SubscriberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &SubscriberService{repo: repo, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// List returns one fixed-size page of subscribers, newest first.
func (s *SubscriberService) List(ctx context.Context, search string, page int) ([]models.Subscriber, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	filter := models.SubscriberFilter{
		Search:   strings.TrimSpace(search),
		Page:     page,
		PageSize: models.SubscriberPageSize,
	}
	subscribers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list subscribers")
	}
	return subscribers, models.NewPagination(page, filter.PageSize, total), nil
}

// Get returns a single subscriber.
func (s *SubscriberService) Get(ctx context.Context, id string) (*models.Subscriber, error) {
	subscriber, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Subscriber not found")
		}
		return nil, internalError(err, "failed to load subscriber")
	}
	return subscriber, nil
}

// Create subscribes an email address. An address that is already subscribed is rejected.
func (s *SubscriberService) Create(ctx context.Context, req dto.SubscriberRequest) (*models.Subscriber, error) {
	email, err := s.checkEmail(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return nil, internalError(err, "failed to check subscriber")
	}
	if exists {
		return nil, appErrors.WithFields(appErrors.ErrDuplicateEmail, "Email already subscribed", "email")
	}

	subscriber := &models.Subscriber{Email: email, SubscriptionDate: s.now()}
	if err := s.repo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.WithFields(appErrors.ErrDuplicateEmail, "Email already subscribed", "email")
		}
		return nil, internalError(err, "failed to create subscriber")
	}

	s.logger.Info("subscriber created", zap.String("subscriber_id", subscriber.ID))
	return subscriber, nil
}

// Update changes the email of an existing subscriber.
func (s *SubscriberService) Update(ctx context.Context, id string, req dto.SubscriberRequest) (*models.Subscriber, error) {
	email, err := s.checkEmail(req)
	if err != nil {
		return nil, err
	}

	subscriber, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, id)
	if err != nil {
		return nil, internalError(err, "failed to check subscriber")
	}
	if exists {
		return nil, appErrors.WithFields(appErrors.ErrDuplicateEmail, "Email already exists", "email")
	}

	subscriber.Email = email
	if err := s.repo.Update(ctx, subscriber); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.WithFields(appErrors.ErrDuplicateEmail, "Email already exists", "email")
		case errors.Is(err, repository.ErrNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Subscriber not found")
		}
		return nil, internalError(err, "failed to update subscriber")
	}
	return subscriber, nil
}

// Delete removes a subscriber. Unlike challenges, an unknown id is reported.
func (s *SubscriberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "Subscriber not found")
		}
		return internalError(err, "failed to delete subscriber")
	}
	s.logger.Info("subscriber deleted", zap.String("subscriber_id", id))
	return nil
}

// Export collects every subscriber matching search into a tabular dataset.
func (s *SubscriberService) Export(ctx context.Context, search string) (*export.Dataset, error) {
	subscribers, _, err := s.repo.List(ctx, models.SubscriberFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, internalError(err, "failed to list subscribers")
	}

	rows := make([][]string, 0, len(subscribers))
	for _, sub := range subscribers {
		rows = append(rows, []string{sub.Email, sub.SubscriptionDate.Format(time.RFC3339)})
	}
	return &export.Dataset{
		Title:   "Subscribers",
		Headers: []string{"Email", "Subscription Date"},
		Rows:    rows,
	}, nil
}

func (s *SubscriberService) checkEmail(req dto.SubscriberRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "Email is required")
	}
	if !subscriberEmailPattern.MatchString(req.Email) {
		return "", appErrors.WithFields(appErrors.ErrValidation, "Please provide a valid email address", "email")
	}
	return req.Email, nil
}
