package service

import (
	"context"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// PublicService serves the anonymous site. Hidden documents behave as if they did not exist.
type PublicService struct {
	challenges  *ChallengeService
	completers  *CompleterService
	subscribers *SubscriberService
}

// NewPublicService builds the public read surface on top of the admin services.
func NewPublicService(challenges *ChallengeService, completers *CompleterService, subscribers *SubscriberService) *PublicService {
	return &PublicService{challenges: challenges, completers: completers, subscribers: subscribers}
}

// ListChallenges returns the visible challenges.
func (s *PublicService) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	return s.challenges.list(ctx, models.VisibilityFilter{VisibleOnly: true})
}

// GetChallenge returns a visible challenge.
func (s *PublicService) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	challenge, err := s.challenges.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !challenge.Visible {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Challenge not found")
	}
	return challenge, nil
}

// ListCompleters returns the visible completers.
func (s *PublicService) ListCompleters(ctx context.Context) ([]models.Completer, error) {
	return s.completers.list(ctx, models.VisibilityFilter{VisibleOnly: true})
}

// GetCompleter returns a visible completer.
func (s *PublicService) GetCompleter(ctx context.Context, id string) (*models.Completer, error) {
	completer, err := s.completers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !completer.Visible {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Completer not found")
	}
	return completer, nil
}

// Subscribe adds an email to the newsletter.
func (s *PublicService) Subscribe(ctx context.Context, req dto.SubscriberRequest) (*models.Subscriber, error) {
	return s.subscribers.Create(ctx, req)
}
