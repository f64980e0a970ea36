package models

import "time"

// Founder is an entry of the founders directory managed from the back-office.
type Founder struct {
	ID                string    `db:"id" json:"id"`
	Sno               int       `db:"sno" json:"sno"`
	Profile           string    `db:"profile" json:"profile"`
	Position          string    `db:"position" json:"position"`
	Location          string    `db:"location" json:"location"`
	BioHighlights     string    `db:"bio_highlights" json:"bioHighlights"`
	Languages         string    `db:"languages" json:"languages"`
	RegionalExpertise string    `db:"regional_expertise" json:"regionalExpertise"`
	TechExpertise     string    `db:"tech_expertise" json:"techExpertise"`
	BusinessExpertise string    `db:"business_expertise" json:"businessExpertise"`
	SocialLinks       string    `db:"social_links" json:"socialLinks"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
