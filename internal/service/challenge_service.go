package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/dto"
	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

// ChallengeService implements the admin use cases for challenges.
type ChallengeService struct {
	repo      ChallengeRepository
	media     *MediaService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChallengeService constructs a ChallengeService.
func NewChallengeService(repo ChallengeRepository, media *MediaService, validate *validator.Validate, logger *zap.Logger) *ChallengeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ChallengeService{repo: repo, media: media, validator: validate, logger: logger}
}

// List returns every challenge in creation order.
func (s *ChallengeService) List(ctx context.Context) ([]models.Challenge, error) {
	return s.list(ctx, models.VisibilityFilter{})
}

func (s *ChallengeService) list(ctx context.Context, filter models.VisibilityFilter) ([]models.Challenge, error) {
	challenges, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list challenges")
	}
	for i := range challenges {
		s.media.decorateChallenge(&challenges[i])
	}
	return challenges, nil
}

// Get returns a challenge regardless of visibility.
func (s *ChallengeService) Get(ctx context.Context, id string) (*models.Challenge, error) {
	challenge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Challenge not found")
		}
		return nil, internalError(err, "failed to load challenge")
	}
	s.media.decorateChallenge(challenge)
	return challenge, nil
}

// Create validates the input, stores the optional image and persists the challenge.
func (s *ChallengeService) Create(ctx context.Context, in dto.ChallengeInput) (*models.Challenge, error) {
	req := in.CreateRequest()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Missing required fields")
	}

	challenge := &models.Challenge{
		Title:       req.Title,
		Funding:     req.Funding,
		Deadline:    *req.Deadline,
		Description: req.Description,
		Visible:     true,
	}
	if in.Visible != nil {
		challenge.Visible = *in.Visible
	}

	ref, err := s.media.Ingest(ctx, ChallengeMediaFolder, in.Image)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		challenge.Image = &ref
	}

	if err := s.repo.Create(ctx, challenge); err != nil {
		s.media.Discard(ctx, ref)
		return nil, internalError(err, "failed to create challenge")
	}

	s.logger.Info("challenge created", zap.String("challenge_id", challenge.ID))
	s.media.decorateChallenge(challenge)
	return challenge, nil
}

// Update applies the fields present in the input. A new image replaces the old one, which
// is removed once the update is stored.
func (s *ChallengeService) Update(ctx context.Context, id string, in dto.ChallengeInput) (*models.Challenge, error) {
	if blank := blankFields([]string{"title", "funding", "description"}, in.Title, in.Funding, in.Description); len(blank) > 0 {
		return nil, appErrors.WithFields(appErrors.ErrValidation, "Fields cannot be empty", blank...)
	}

	challenge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Challenge not found")
		}
		return nil, internalError(err, "failed to load challenge")
	}

	ref, err := s.media.Ingest(ctx, ChallengeMediaFolder, in.Image)
	if err != nil {
		return nil, err
	}

	var previous string
	if challenge.Image != nil {
		previous = *challenge.Image
	}

	patch := models.ChallengePatch{
		Title:       in.Title,
		Funding:     in.Funding,
		Deadline:    in.Deadline,
		Description: in.Description,
		Visible:     in.Visible,
	}
	if ref != "" {
		patch.Image = &ref
	}
	patch.Apply(challenge)

	if err := s.repo.Update(ctx, challenge); err != nil {
		s.media.Discard(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Challenge not found")
		}
		return nil, internalError(err, "failed to update challenge")
	}
	if ref != "" && previous != ref {
		s.media.Discard(ctx, previous)
	}

	s.media.decorateChallenge(challenge)
	return challenge, nil
}

// Delete removes a challenge and its image. Deleting an unknown id succeeds.
func (s *ChallengeService) Delete(ctx context.Context, id string) error {
	challenge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return internalError(err, "failed to load challenge")
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return internalError(err, "failed to delete challenge")
	}
	if challenge.Image != nil {
		s.media.Discard(ctx, *challenge.Image)
	}
	s.logger.Info("challenge deleted", zap.String("challenge_id", id))
	return nil
}
