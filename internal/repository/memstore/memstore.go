// Package memstore keeps every resource in process memory. It backs DB_DRIVER=memory for
// local development and the end-to-end router tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
)

// table is an insertion-ordered map guarded by a RWMutex.
type table[T any] struct {
	mu   sync.RWMutex
	seq  int64
	rows map[string]row[T]
}

type row[T any] struct {
	seq int64
	val T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]row[T])}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	return r.val, ok
}

// list returns matching values ordered by insertion.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.val) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.val
	}
	return out
}

// insert stores val unless conflict reports a clash with an existing row.
func (t *table[T]) insert(id string, val T, conflict func(existing T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if conflict != nil {
		for _, r := range t.rows {
			if conflict(r.val) {
				return repository.ErrDuplicate
			}
		}
	}
	t.seq++
	t.rows[id] = row[T]{seq: t.seq, val: val}
	return nil
}

func (t *table[T]) replace(id string, val T, conflict func(existing T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if conflict != nil {
		for otherID, other := range t.rows {
			if otherID != id && conflict(other.val) {
				return repository.ErrDuplicate
			}
		}
	}
	t.rows[id] = row[T]{seq: r.seq, val: val}
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	*created = now
	*updated = now
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// UserRepository keeps administrator accounts in memory.
type UserRepository struct{ t *table[models.User] }

func NewUserRepository() *UserRepository { return &UserRepository{t: newTable[models.User]()} }

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	matches := r.t.list(func(u models.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	return &matches[0], nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) Count(context.Context) (int, error) { return r.t.count(), nil }

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return r.t.insert(user.ID, *user, func(u models.User) bool { return u.Email == user.Email })
}

// ChallengeRepository keeps challenges in memory.
type ChallengeRepository struct{ t *table[models.Challenge] }

func NewChallengeRepository() *ChallengeRepository {
	return &ChallengeRepository{t: newTable[models.Challenge]()}
}

func (r *ChallengeRepository) List(_ context.Context, filter models.VisibilityFilter) ([]models.Challenge, error) {
	out := r.t.list(func(c models.Challenge) bool { return !filter.VisibleOnly || c.Visible })
	for i := range out {
		out[i].Image = cloneString(out[i].Image)
	}
	return out, nil
}

func (r *ChallengeRepository) FindByID(_ context.Context, id string) (*models.Challenge, error) {
	c, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Image = cloneString(c.Image)
	return &c, nil
}

func (r *ChallengeRepository) Create(_ context.Context, challenge *models.Challenge) error {
	stamp(&challenge.ID, &challenge.CreatedAt, &challenge.UpdatedAt)
	stored := *challenge
	stored.Image = cloneString(challenge.Image)
	return r.t.insert(stored.ID, stored, nil)
}

func (r *ChallengeRepository) Update(_ context.Context, challenge *models.Challenge) error {
	challenge.UpdatedAt = time.Now().UTC()
	stored := *challenge
	stored.Image = cloneString(challenge.Image)
	return r.t.replace(stored.ID, stored, nil)
}

func (r *ChallengeRepository) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// CompleterRepository keeps completers in memory.
type CompleterRepository struct{ t *table[models.Completer] }

func NewCompleterRepository() *CompleterRepository {
	return &CompleterRepository{t: newTable[models.Completer]()}
}

func (r *CompleterRepository) List(_ context.Context, filter models.VisibilityFilter) ([]models.Completer, error) {
	out := r.t.list(func(c models.Completer) bool { return !filter.VisibleOnly || c.Visible })
	for i := range out {
		out[i].ProfilePicture = cloneString(out[i].ProfilePicture)
	}
	return out, nil
}

func (r *CompleterRepository) FindByID(_ context.Context, id string) (*models.Completer, error) {
	c, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.ProfilePicture = cloneString(c.ProfilePicture)
	return &c, nil
}

func (r *CompleterRepository) Create(_ context.Context, completer *models.Completer) error {
	stamp(&completer.ID, &completer.CreatedAt, &completer.UpdatedAt)
	stored := *completer
	stored.ProfilePicture = cloneString(completer.ProfilePicture)
	return r.t.insert(stored.ID, stored, nil)
}

func (r *CompleterRepository) Update(_ context.Context, completer *models.Completer) error {
	completer.UpdatedAt = time.Now().UTC()
	stored := *completer
	stored.ProfilePicture = cloneString(completer.ProfilePicture)
	return r.t.replace(stored.ID, stored, nil)
}

func (r *CompleterRepository) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// SubscriberRepository keeps subscribers in memory with a unique email constraint.
type SubscriberRepository struct{ t *table[models.Subscriber] }

func NewSubscriberRepository() *SubscriberRepository {
	return &SubscriberRepository{t: newTable[models.Subscriber]()}
}

func (r *SubscriberRepository) List(_ context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	needle := strings.ToLower(filter.Search)
	all := r.t.list(func(s models.Subscriber) bool {
		return needle == "" || strings.Contains(strings.ToLower(s.Email), needle)
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SubscriptionDate.After(all[j].SubscriptionDate)
	})

	total := len(all)
	if filter.PageSize <= 0 {
		return all, total, nil
	}
	start := filter.Offset()
	if start >= total {
		return []models.Subscriber{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *SubscriberRepository) FindByID(_ context.Context, id string) (*models.Subscriber, error) {
	s, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SubscriberRepository) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	matches := r.t.list(func(s models.Subscriber) bool { return s.Email == email && s.ID != excludeID })
	return len(matches) > 0, nil
}

func (r *SubscriberRepository) Create(_ context.Context, subscriber *models.Subscriber) error {
	stamp(&subscriber.ID, &subscriber.CreatedAt, &subscriber.UpdatedAt)
	if subscriber.SubscriptionDate.IsZero() {
		subscriber.SubscriptionDate = subscriber.CreatedAt
	}
	return r.t.insert(subscriber.ID, *subscriber, func(s models.Subscriber) bool { return s.Email == subscriber.Email })
}

func (r *SubscriberRepository) Update(_ context.Context, subscriber *models.Subscriber) error {
	current, ok := r.t.get(subscriber.ID)
	if !ok {
		return repository.ErrNotFound
	}
	current.Email = subscriber.Email
	current.UpdatedAt = time.Now().UTC()
	if err := r.t.replace(current.ID, current, func(s models.Subscriber) bool { return s.Email == current.Email }); err != nil {
		return err
	}
	*subscriber = current
	return nil
}

func (r *SubscriberRepository) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// FounderRepository keeps founders in memory.
type FounderRepository struct{ t *table[models.Founder] }

func NewFounderRepository() *FounderRepository {
	return &FounderRepository{t: newTable[models.Founder]()}
}

func (r *FounderRepository) List(context.Context) ([]models.Founder, error) {
	return r.t.list(nil), nil
}

func (r *FounderRepository) FindByID(_ context.Context, id string) (*models.Founder, error) {
	f, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *FounderRepository) Create(_ context.Context, founder *models.Founder) error {
	stamp(&founder.ID, &founder.CreatedAt, &founder.UpdatedAt)
	return r.t.insert(founder.ID, *founder, nil)
}

func (r *FounderRepository) Update(_ context.Context, founder *models.Founder) error {
	founder.UpdatedAt = time.Now().UTC()
	return r.t.replace(founder.ID, *founder, nil)
}

func (r *FounderRepository) Delete(_ context.Context, id string) error { return r.t.remove(id) }
