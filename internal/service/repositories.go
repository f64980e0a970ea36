package service

import (
	"context"

	"github.com/noah-isme/startupathon-api/internal/models"
)

// The store contracts below are satisfied by the Postgres repositories and by the mongo and
// memory backends. Lookups of an unknown id return repository.ErrNotFound; writes that
// collide on a unique email return repository.ErrDuplicate.

// UserRepository persists administrator accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, user *models.User) error
}

// ChallengeRepository persists challenges.
type ChallengeRepository interface {
	List(ctx context.Context, filter models.VisibilityFilter) ([]models.Challenge, error)
	FindByID(ctx context.Context, id string) (*models.Challenge, error)
	Create(ctx context.Context, challenge *models.Challenge) error
	Update(ctx context.Context, challenge *models.Challenge) error
	Delete(ctx context.Context, id string) error
}

// CompleterRepository persists completer showcases.
type CompleterRepository interface {
	List(ctx context.Context, filter models.VisibilityFilter) ([]models.Completer, error)
	FindByID(ctx context.Context, id string) (*models.Completer, error)
	Create(ctx context.Context, completer *models.Completer) error
	Update(ctx context.Context, completer *models.Completer) error
	Delete(ctx context.Context, id string) error
}

// SubscriberRepository persists newsletter subscribers.
type SubscriberRepository interface {
	List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error)
	FindByID(ctx context.Context, id string) (*models.Subscriber, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, subscriber *models.Subscriber) error
	Update(ctx context.Context, subscriber *models.Subscriber) error
	Delete(ctx context.Context, id string) error
}

// FounderRepository persists the founders directory.
type FounderRepository interface {
	List(ctx context.Context) ([]models.Founder, error)
	FindByID(ctx context.Context, id string) (*models.Founder, error)
	Create(ctx context.Context, founder *models.Founder) error
	Update(ctx context.Context, founder *models.Founder) error
	Delete(ctx context.Context, id string) error
}
