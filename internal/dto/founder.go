package dto

// FounderInput is a decoded founder create or update request. Nil fields were absent.
type FounderInput struct {
	Sno               *int
	Profile           *string
	Position          *string
	Location          *string
	BioHighlights     *string
	Languages         *string
	RegionalExpertise *string
	TechExpertise     *string
	BusinessExpertise *string
	SocialLinks       *string
}

// CreateFounderRequest is validated before a founder is created.
type CreateFounderRequest struct {
	Profile string `json:"profile" validate:"required"`
}

// CreateRequest projects the input onto the fields required at creation.
func (in FounderInput) CreateRequest() CreateFounderRequest {
	return CreateFounderRequest{Profile: deref(in.Profile)}
}

// DecodeFounder reads a founder from a form.
func DecodeFounder(f *Form) (*FounderInput, error) {
	if err := f.Only("sno", "profile", "position", "location", "bioHighlights", "languages", "regionalExpertise", "techExpertise", "businessExpertise", "socialLinks"); err != nil {
		return nil, err
	}
	sno, err := f.Int("sno")
	if err != nil {
		return nil, err
	}
	return &FounderInput{
		Sno:               sno,
		Profile:           f.String("profile"),
		Position:          f.String("position"),
		Location:          f.String("location"),
		BioHighlights:     f.String("bioHighlights"),
		Languages:         f.String("languages"),
		RegionalExpertise: f.String("regionalExpertise"),
		TechExpertise:     f.String("techExpertise"),
		BusinessExpertise: f.String("businessExpertise"),
		SocialLinks:       f.String("socialLinks"),
	}, nil
}
