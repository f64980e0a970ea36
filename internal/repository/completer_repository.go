package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/startupathon-api/internal/models"
)

const completerColumns = `id, project_name, profile, position, description, funding, linkedin_url, profile_picture, status, visible, created_at, updated_at`

// CompleterRepository stores completer showcases in Postgres.
type CompleterRepository struct {
	base
}

// NewCompleterRepository constructs a CompleterRepository.
func NewCompleterRepository(db *sqlx.DB, timeout time.Duration) *CompleterRepository {
	return &CompleterRepository{base{db: db, timeout: timeout}}
}

// List returns completers in creation order.
func (r *CompleterRepository) List(ctx context.Context, filter models.VisibilityFilter) ([]models.Completer, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + completerColumns + ` FROM completers`
	if filter.VisibleOnly {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	completers := make([]models.Completer, 0)
	if err := r.db.SelectContext(ctx, &completers, query); err != nil {
		return nil, translate("list completers", err)
	}
	return completers, nil
}

// FindByID returns a completer by id.
func (r *CompleterRepository) FindByID(ctx context.Context, id string) (*models.Completer, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT ` + completerColumns + ` FROM completers WHERE id = $1`
	var completer models.Completer
	if err := r.db.GetContext(ctx, &completer, query, id); err != nil {
		return nil, translate("find completer", err)
	}
	return &completer, nil
}

// Create inserts a completer.
func (r *CompleterRepository) Create(ctx context.Context, completer *models.Completer) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if completer.ID == "" {
		completer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	completer.CreatedAt = now
	completer.UpdatedAt = now

	const query = `INSERT INTO completers (` + completerColumns + `) VALUES (:id, :project_name, :profile, :position, :description, :funding, :linkedin_url, :profile_picture, :status, :visible, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, completer); err != nil {
		return translate("create completer", err)
	}
	return nil
}

// Update overwrites the mutable fields of a completer.
func (r *CompleterRepository) Update(ctx context.Context, completer *models.Completer) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	completer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE completers SET project_name = :project_name, profile = :profile, position = :position, description = :description, funding = :funding, linkedin_url = :linkedin_url, profile_picture = :profile_picture, status = :status, visible = :visible, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, completer)
	if err != nil {
		return translate("update completer", err)
	}
	return expectOne("update completer", res)
}

// Delete removes a completer.
func (r *CompleterRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM completers WHERE id = $1`, id)
	if err != nil {
		return translate("delete completer", err)
	}
	return expectOne("delete completer", res)
}
