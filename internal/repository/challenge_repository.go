package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/startupathon-api/internal/models"
)

const challengeColumns = `id, title, funding, deadline, description, visible, image, created_at, updated_at`

// ChallengeRepository stores challenges in Postgres.
type ChallengeRepository struct {
	base
}

// NewChallengeRepository constructs a ChallengeRepository.
func NewChallengeRepository(db *sqlx.DB, timeout time.Duration) *ChallengeRepository {
	return &ChallengeRepository{base{db: db, timeout: timeout}}
}

// List returns challenges in creation order.
func (r *ChallengeRepository) List(ctx context.Context, filter models.VisibilityFilter) ([]models.Challenge, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + challengeColumns + ` FROM challenges`
	if filter.VisibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	challenges := make([]models.Challenge, 0)
	if err := r.db.SelectContext(ctx, &challenges, query); err != nil {
		return nil, translate("list challenges", err)
	}
	return challenges, nil
}

// FindByID returns a challenge by id.
func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*models.Challenge, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`
	var challenge models.Challenge
	if err := r.db.GetContext(ctx, &challenge, query, id); err != nil {
		return nil, translate("find challenge", err)
	}
	return &challenge, nil
}

// Create inserts a challenge, filling id and timestamps.
func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if challenge.ID == "" {
		challenge.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now

	const query = `INSERT INTO challenges (` + challengeColumns + `) VALUES (:id, :title, :funding, :deadline, :description, :visible, :image, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, challenge); err != nil {
		return translate("create challenge", err)
	}
	return nil
}

// Update overwrites the mutable fields of a challenge.
func (r *ChallengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	challenge.UpdatedAt = time.Now().UTC()
	const query = `UPDATE challenges SET title = :title, funding = :funding, deadline = :deadline, description = :description, visible = :visible, image = :image, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, challenge)
	if err != nil {
		return translate("update challenge", err)
	}
	return expectOne("update challenge", res)
}

// Delete removes a challenge.
func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return translate("delete challenge", err)
	}
	return expectOne("delete challenge", res)
}
