package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/startupathon-api/internal/models"
)

const userColumns = `id, email, name, password_hash, role, created_at, updated_at`

// UserRepository provides database access for administrator accounts.
type UserRepository struct {
	base
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB, timeout time.Duration) *UserRepository {
	return &UserRepository{base{db: db, timeout: timeout}}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translate("find user by id", err)
	}
	return &user, nil
}

// Count returns the number of stored accounts.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, translate("count users", err)
	}
	return total, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (` + userColumns + `) VALUES (:id, :email, :name, :password_hash, :role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return translate("create user", err)
	}
	return nil
}
