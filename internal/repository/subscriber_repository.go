package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/startupathon-api/internal/models"
)

const subscriberColumns = `id, email, subscription_date, created_at, updated_at`

// SubscriberRepository stores newsletter subscribers in Postgres.
type SubscriberRepository struct {
	base
}

// NewSubscriberRepository constructs a SubscriberRepository.
func NewSubscriberRepository(db *sqlx.DB, timeout time.Duration) *SubscriberRepository {
	return &SubscriberRepository{base{db: db, timeout: timeout}}
}

// List returns one page of subscribers, newest subscription first, with the total match count.
func (r *SubscriberRepository) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where := ""
	var args []interface{}
	if filter.Search != "" {
		where = ` WHERE email LIKE $1`
		args = append(args, likePattern(filter.Search))
	}

	listQuery := `SELECT ` + subscriberColumns + ` FROM subscribers` + where + ` ORDER BY subscription_date DESC, id DESC`
	if filter.PageSize > 0 {
		listQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageSize, filter.Offset())
	}

	subscribers := make([]models.Subscriber, 0)
	if err := r.db.SelectContext(ctx, &subscribers, listQuery, args...); err != nil {
		return nil, 0, translate("list subscribers", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM subscribers`+where, args...); err != nil {
		return nil, 0, translate("count subscribers", err)
	}

	return subscribers, total, nil
}

// FindByID returns a subscriber by id.
func (r *SubscriberRepository) FindByID(ctx context.Context, id string) (*models.Subscriber, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`
	var subscriber models.Subscriber
	if err := r.db.GetContext(ctx, &subscriber, query, id); err != nil {
		return nil, translate("find subscriber", err)
	}
	return &subscriber, nil
}

// ExistsByEmail reports whether another subscriber already uses email.
func (r *SubscriberRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	const query = `SELECT EXISTS(SELECT 1 FROM subscribers WHERE email = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, translate("check subscriber email", err)
	}
	return exists, nil
}

// Create inserts a subscriber. A unique index on email backs the service pre-check.
func (r *SubscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if subscriber.ID == "" {
		subscriber.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subscriber.SubscriptionDate.IsZero() {
		subscriber.SubscriptionDate = now
	}
	subscriber.CreatedAt = now
	subscriber.UpdatedAt = now

	const query = `INSERT INTO subscribers (` + subscriberColumns + `) VALUES (:id, :email, :subscription_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subscriber); err != nil {
		return translate("create subscriber", err)
	}
	return nil
}

// Update changes the subscriber email.
func (r *SubscriberRepository) Update(ctx context.Context, subscriber *models.Subscriber) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	subscriber.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subscribers SET email = :email, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, subscriber)
	if err != nil {
		return translate("update subscriber", err)
	}
	return expectOne("update subscriber", res)
}

// Delete removes a subscriber.
func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return translate("delete subscriber", err)
	}
	return expectOne("delete subscriber", res)
}
