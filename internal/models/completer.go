package models

import "time"

// CompleterStatus is the lifecycle state of a completer showcase.
type CompleterStatus string

const (
	CompleterActive   CompleterStatus = "active"
	CompleterInactive CompleterStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s CompleterStatus) Valid() bool {
	return s == CompleterActive || s == CompleterInactive
}

// Completer showcases a founder who finished a challenge.
type Completer struct {
	ID                string          `db:"id" json:"id"`
	ProjectName       string          `db:"project_name" json:"projectName"`
	Profile           string          `db:"profile" json:"profile"`
	Position          string          `db:"position" json:"position"`
	Description       string          `db:"description" json:"description"`
	Funding           string          `db:"funding" json:"funding"`
	LinkedinURL       string          `db:"linkedin_url" json:"linkedinUrl"`
	ProfilePicture    *string         `db:"profile_picture" json:"profilePicture,omitempty"`
	ProfilePictureURL string          `db:"-" json:"profilePictureUrl,omitempty"`
	Status            CompleterStatus `db:"status" json:"status"`
	Visible           bool            `db:"visible" json:"visible"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// CompleterPatch lists the fields an update may change; nil means unchanged.
type CompleterPatch struct {
	ProjectName    *string
	Profile        *string
	Position       *string
	Description    *string
	Funding        *string
	LinkedinURL    *string
	ProfilePicture *string
	Status         *CompleterStatus
	Visible        *bool
}

// Apply copies every set field onto c.
func (p CompleterPatch) Apply(c *Completer) {
	if p.ProjectName != nil {
		c.ProjectName = *p.ProjectName
	}
	if p.Profile != nil {
		c.Profile = *p.Profile
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Funding != nil {
		c.Funding = *p.Funding
	}
	if p.LinkedinURL != nil {
		c.LinkedinURL = *p.LinkedinURL
	}
	if p.ProfilePicture != nil {
		pic := *p.ProfilePicture
		c.ProfilePicture = &pic
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Visible != nil {
		c.Visible = *p.Visible
	}
}
