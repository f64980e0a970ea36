package dto

import (
	"strings"

	"github.com/noah-isme/startupathon-api/internal/models"
)

// CompleterInput is a decoded completer create or update request. Nil fields were absent.
type CompleterInput struct {
	ProjectName    *string
	Profile        *string
	Position       *string
	Description    *string
	Funding        *string
	LinkedinURL    *string
	Status         *models.CompleterStatus
	Visible        *bool
	ProfilePicture *Upload
}

// CreateCompleterRequest is validated before a completer is created.
type CreateCompleterRequest struct {
	ProjectName string `json:"projectName" validate:"required"`
	Profile     string `json:"profile" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description" validate:"required"`
	Funding     string `json:"funding" validate:"required"`
	LinkedinURL string `json:"linkedinUrl" validate:"required"`
}

// CreateRequest projects the input onto the fields required at creation.
func (in CompleterInput) CreateRequest() CreateCompleterRequest {
	return CreateCompleterRequest{
		ProjectName: deref(in.ProjectName),
		Profile:     deref(in.Profile),
		Position:    deref(in.Position),
		Description: deref(in.Description),
		Funding:     deref(in.Funding),
		LinkedinURL: deref(in.LinkedinURL),
	}
}

// DecodeCompleter reads a completer from a form whose file field is "profilePicture".
func DecodeCompleter(f *Form) (*CompleterInput, error) {
	if err := f.Only("projectName", "profile", "position", "description", "funding", "linkedinUrl", "status", "visible", "profilePicture"); err != nil {
		return nil, err
	}
	in := &CompleterInput{
		ProjectName: f.String("projectName"),
		Profile:     f.String("profile"),
		Position:    f.String("position"),
		Description: f.String("description"),
		Funding:     f.String("funding"),
		LinkedinURL: f.String("linkedinUrl"),
	}
	if raw := f.String("status"); raw != nil && *raw != "" {
		status := models.CompleterStatus(strings.ToLower(*raw))
		if !status.Valid() {
			return nil, invalidField("status", "must be active or inactive")
		}
		in.Status = &status
	}
	var err error
	if in.Visible, err = f.Bool("visible"); err != nil {
		return nil, err
	}
	if in.ProfilePicture, err = f.Upload("profilePicture"); err != nil {
		return nil, err
	}
	return in, nil
}
