package mongostore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
)

type subscriberDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Email            string             `bson:"email"`
	SubscriptionDate time.Time          `bson:"subscriptionDate"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d subscriberDoc) model() models.Subscriber {
	return models.Subscriber{
		ID:               d.ID.Hex(),
		Email:            d.Email,
		SubscriptionDate: d.SubscriptionDate,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// SubscriberRepository stores subscribers in the subscribers collection.
type SubscriberRepository struct {
	base
}

// NewSubscriberRepository constructs a SubscriberRepository.
func NewSubscriberRepository(db *mongo.Database, timeout time.Duration) *SubscriberRepository {
	return &SubscriberRepository{newBase(db, subscribersCollection, timeout)}
}

func (r *SubscriberRepository) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["email"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate("count subscribers", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "subscriptionDate", Value: -1}, {Key: "_id", Value: -1}})
	if filter.PageSize > 0 {
		opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.PageSize))
	}
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translate("list subscribers", err)
	}
	var docs []subscriberDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, translate("decode subscribers", err)
	}

	out := make([]models.Subscriber, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, int(total), nil
}

func (r *SubscriberRepository) FindByID(ctx context.Context, id string) (*models.Subscriber, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var doc subscriberDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find subscriber", err)
	}
	m := doc.model()
	return &m, nil
}

func (r *SubscriberRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := bson.M{"email": email}
	if oid, ok := objectID(excludeID); ok {
		query["_id"] = bson.M{"$ne": oid}
	}
	n, err := r.coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, translate("check subscriber email", err)
	}
	return n > 0, nil
}

func (r *SubscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	if subscriber.SubscriptionDate.IsZero() {
		subscriber.SubscriptionDate = now
	}
	subscriber.CreatedAt = now
	subscriber.UpdatedAt = now
	doc := subscriberDoc{
		ID:               primitive.NewObjectID(),
		Email:            subscriber.Email,
		SubscriptionDate: subscriber.SubscriptionDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("create subscriber", err)
	}
	subscriber.ID = doc.ID.Hex()
	return nil
}

func (r *SubscriberRepository) Update(ctx context.Context, subscriber *models.Subscriber) error {
	oid, ok := objectID(subscriber.ID)
	if !ok {
		return repository.ErrNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	subscriber.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"email":     subscriber.Email,
		"updatedAt": subscriber.UpdatedAt,
	}})
	if err != nil {
		return translate("update subscriber", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "delete subscriber", id)
}
