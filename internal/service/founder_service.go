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

// FounderService manages the founders directory.
type FounderService struct {
	repo      FounderRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFounderService constructs a FounderService.
func NewFounderService(repo FounderRepository, validate *validator.Validate, logger *zap.Logger) *FounderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &FounderService{repo: repo, validator: validate, logger: logger}
}

// List returns all founders in creation order.
func (s *FounderService) List(ctx context.Context) ([]models.Founder, error) {
	founders, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list founders")
	}
	return founders, nil
}

// Get returns a single founder.
func (s *FounderService) Get(ctx context.Context, id string) (*models.Founder, error) {
	founder, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Founder not found")
		}
		return nil, internalError(err, "failed to load founder")
	}
	return founder, nil
}

// Create persists a founder; only the profile is mandatory.
func (s *FounderService) Create(ctx context.Context, in dto.FounderInput) (*models.Founder, error) {
	if err := s.validator.Struct(in.CreateRequest()); err != nil {
		return nil, validationError(err, "Missing required fields")
	}
	founder := &models.Founder{}
	applyFounder(founder, in)
	if err := s.repo.Create(ctx, founder); err != nil {
		return nil, internalError(err, "failed to create founder")
	}
	return founder, nil
}

// Update applies the fields present in the input.
func (s *FounderService) Update(ctx context.Context, id string, in dto.FounderInput) (*models.Founder, error) {
	if blank := blankFields([]string{"profile"}, in.Profile); len(blank) > 0 {
		return nil, appErrors.WithFields(appErrors.ErrValidation, "Fields cannot be empty", blank...)
	}
	founder, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyFounder(founder, in)
	if err := s.repo.Update(ctx, founder); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Founder not found")
		}
		return nil, internalError(err, "failed to update founder")
	}
	return founder, nil
}

// Delete removes a founder. Deleting an unknown id succeeds.
func (s *FounderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return internalError(err, "failed to delete founder")
	}
	return nil
}

func applyFounder(f *models.Founder, in dto.FounderInput) {
	if in.Sno != nil {
		f.Sno = *in.Sno
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Profile, in.Profile)
	set(&f.Position, in.Position)
	set(&f.Location, in.Location)
	set(&f.BioHighlights, in.BioHighlights)
	set(&f.Languages, in.Languages)
	set(&f.RegionalExpertise, in.RegionalExpertise)
	set(&f.TechExpertise, in.TechExpertise)
	set(&f.BusinessExpertise, in.BusinessExpertise)
	set(&f.SocialLinks, in.SocialLinks)
}
