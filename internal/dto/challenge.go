package dto

import (
	"time"
)

// ChallengeInput is a decoded challenge create or update request. Nil fields were absent.
type ChallengeInput struct {
	Title       *string
	Funding     *string
	Deadline    *time.Time
	Description *string
	Visible     *bool
	Image       *Upload
}

// CreateChallengeRequest is validated before a challenge is created.
type CreateChallengeRequest struct {
	Title       string     `json:"title" validate:"required"`
	Funding     string     `json:"funding" validate:"required"`
	Deadline    *time.Time `json:"deadline" validate:"required"`
	Description string     `json:"description" validate:"required"`
}

// CreateRequest projects the input onto the fields required at creation.
func (in ChallengeInput) CreateRequest() CreateChallengeRequest {
	return CreateChallengeRequest{
		Title:       deref(in.Title),
		Funding:     deref(in.Funding),
		Deadline:    in.Deadline,
		Description: deref(in.Description),
	}
}

// DecodeChallenge reads a challenge from a form whose file field is "image".
func DecodeChallenge(f *Form) (*ChallengeInput, error) {
	if err := f.Only("title", "funding", "deadline", "description", "visible", "image"); err != nil {
		return nil, err
	}
	in := &ChallengeInput{
		Title:       f.String("title"),
		Funding:     f.String("funding"),
		Description: f.String("description"),
	}
	var err error
	if in.Deadline, err = f.Date("deadline"); err != nil {
		return nil, err
	}
	if in.Visible, err = f.Bool("visible"); err != nil {
		return nil, err
	}
	if in.Image, err = f.Upload("image"); err != nil {
		return nil, err
	}
	return in, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
