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

// CompleterService implements the admin use cases for completer showcases.
type CompleterService struct {
	repo      CompleterRepository
	media     *MediaService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCompleterService constructs a CompleterService.
func NewCompleterService(repo CompleterRepository, media *MediaService, validate *validator.Validate, logger *zap.Logger) *CompleterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &CompleterService{repo: repo, media: media, validator: validate, logger: logger}
}

// List returns every completer in creation order.
func (s *CompleterService) List(ctx context.Context) ([]models.Completer, error) {
	return s.list(ctx, models.VisibilityFilter{})
}

func (s *CompleterService) list(ctx context.Context, filter models.VisibilityFilter) ([]models.Completer, error) {
	completers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list completers")
	}
	for i := range completers {
		s.media.decorateCompleter(&completers[i])
	}
	return completers, nil
}

// Get returns a completer regardless of visibility.
func (s *CompleterService) Get(ctx context.Context, id string) (*models.Completer, error) {
	completer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.media.decorateCompleter(completer)
	return completer, nil
}

func (s *CompleterService) find(ctx context.Context, id string) (*models.Completer, error) {
	completer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Completer not found")
		}
		return nil, internalError(err, "failed to load completer")
	}
	return completer, nil
}

// Create validates the input, stores the optional profile picture and persists the completer.
func (s *CompleterService) Create(ctx context.Context, in dto.CompleterInput) (*models.Completer, error) {
	req := in.CreateRequest()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Missing required fields")
	}

	completer := &models.Completer{
		ProjectName: req.ProjectName,
		Profile:     req.Profile,
		Position:    req.Position,
		Description: req.Description,
		Funding:     req.Funding,
		LinkedinURL: req.LinkedinURL,
		Status:      models.CompleterActive,
		Visible:     true,
	}
	if in.Status != nil {
		completer.Status = *in.Status
	}
	if in.Visible != nil {
		completer.Visible = *in.Visible
	}

	ref, err := s.media.Ingest(ctx, CompleterMediaFolder, in.ProfilePicture)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		completer.ProfilePicture = &ref
	}

	if err := s.repo.Create(ctx, completer); err != nil {
		s.media.Discard(ctx, ref)
		return nil, internalError(err, "failed to create completer")
	}

	s.logger.Info("completer created", zap.String("completer_id", completer.ID))
	s.media.decorateCompleter(completer)
	return completer, nil
}

// Update applies the fields present in the input and swaps the profile picture when a new
// one is uploaded.
func (s *CompleterService) Update(ctx context.Context, id string, in dto.CompleterInput) (*models.Completer, error) {
	blank := blankFields(
		[]string{"projectName", "profile", "position", "description", "funding", "linkedinUrl"},
		in.ProjectName, in.Profile, in.Position, in.Description, in.Funding, in.LinkedinURL,
	)
	if len(blank) > 0 {
		return nil, appErrors.WithFields(appErrors.ErrValidation, "Fields cannot be empty", blank...)
	}

	completer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.media.Ingest(ctx, CompleterMediaFolder, in.ProfilePicture)
	if err != nil {
		return nil, err
	}

	var previous string
	if completer.ProfilePicture != nil {
		previous = *completer.ProfilePicture
	}

	patch := models.CompleterPatch{
		ProjectName: in.ProjectName,
		Profile:     in.Profile,
		Position:    in.Position,
		Description: in.Description,
		Funding:     in.Funding,
		LinkedinURL: in.LinkedinURL,
		Status:      in.Status,
		Visible:     in.Visible,
	}
	if ref != "" {
		patch.ProfilePicture = &ref
	}
	patch.Apply(completer)

	if err := s.repo.Update(ctx, completer); err != nil {
		s.media.Discard(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Completer not found")
		}
		return nil, internalError(err, "failed to update completer")
	}
	if ref != "" && previous != ref {
		s.media.Discard(ctx, previous)
	}

	s.media.decorateCompleter(completer)
	return completer, nil
}

// Delete removes a completer and its profile picture. Deleting an unknown id succeeds.
func (s *CompleterService) Delete(ctx context.Context, id string) error {
	completer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return internalError(err, "failed to load completer")
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return internalError(err, "failed to delete completer")
	}
	if completer.ProfilePicture != nil {
		s.media.Discard(ctx, *completer.ProfilePicture)
	}
	s.logger.Info("completer deleted", zap.String("completer_id", id))
	return nil
}
