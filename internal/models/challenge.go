package models

import "time"

// Challenge is a funded startup challenge shown on the public site.
type Challenge struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Funding     string    `db:"funding" json:"funding"`
	Deadline    time.Time `db:"deadline" json:"deadline"`
	Description string    `db:"description" json:"description"`
	Visible     bool      `db:"visible" json:"visible"`
	Image       *string   `db:"image" json:"image,omitempty"`
	ImageURL    string    `db:"-" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ChallengePatch lists the fields an update may change; nil means unchanged.
type ChallengePatch struct {
	Title       *string
	Funding     *string
	Deadline    *time.Time
	Description *string
	Visible     *bool
	Image       *string
}

// Apply copies every set field onto c.
func (p ChallengePatch) Apply(c *Challenge) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Funding != nil {
		c.Funding = *p.Funding
	}
	if p.Deadline != nil {
		c.Deadline = *p.Deadline
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Visible != nil {
		c.Visible = *p.Visible
	}
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
}

// VisibilityFilter narrows challenge and completer listings.
type VisibilityFilter struct {
	VisibleOnly bool
}
