package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/startupathon-api/internal/models"
)

const founderColumns = `id, sno, profile, position, location, bio_highlights, languages, regional_expertise, tech_expertise, business_expertise, social_links, created_at, updated_at`

// FounderRepository stores the founders directory in Postgres.
type FounderRepository struct {
	base
}

// NewFounderRepository constructs a FounderRepository.
func NewFounderRepository(db *sqlx.DB, timeout time.Duration) *FounderRepository {
	return &FounderRepository{base{db: db, timeout: timeout}}
}

// List returns founders in creation order.
func (r *FounderRepository) List(ctx context.Context) ([]models.Founder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	founders := make([]models.Founder, 0)
	if err := r.db.SelectContext(ctx, &founders, `SELECT `+founderColumns+` FROM founders ORDER BY created_at ASC, id ASC`); err != nil {
		return nil, translate("list founders", err)
	}
	return founders, nil
}

// FindByID returns a founder by id.
func (r *FounderRepository) FindByID(ctx context.Context, id string) (*models.Founder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var founder models.Founder
	if err := r.db.GetContext(ctx, &founder, `SELECT `+founderColumns+` FROM founders WHERE id = $1`, id); err != nil {
		return nil, translate("find founder", err)
	}
	return &founder, nil
}

// Create inserts a founder.
func (r *FounderRepository) Create(ctx context.Context, founder *models.Founder) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if founder.ID == "" {
		founder.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	founder.CreatedAt = now
	founder.UpdatedAt = now

	const query = `INSERT INTO founders (` + founderColumns + `) VALUES (:id, :sno, :profile, :position, :location, :bio_highlights, :languages, :regional_expertise, :tech_expertise, :business_expertise, :social_links, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, founder); err != nil {
		return translate("create founder", err)
	}
	return nil
}

// Update overwrites the mutable fields of a founder.
func (r *FounderRepository) Update(ctx context.Context, founder *models.Founder) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	founder.UpdatedAt = time.Now().UTC()
	const query = `UPDATE founders SET sno = :sno, profile = :profile, position = :position, location = :location, bio_highlights = :bio_highlights, languages = :languages, regional_expertise = :regional_expertise, tech_expertise = :tech_expertise, business_expertise = :business_expertise, social_links = :social_links, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, founder)
	if err != nil {
		return translate("update founder", err)
	}
	return expectOne("update founder", res)
}

// Delete removes a founder.
func (r *FounderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM founders WHERE id = $1`, id)
	if err != nil {
		return translate("delete founder", err)
	}
	return expectOne("delete founder", res)
}
