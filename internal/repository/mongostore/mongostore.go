// Package mongostore implements the resource stores on a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/startupathon-api/internal/repository"
)

const (
	usersCollection       = "users"
	challengesCollection  = "challenges"
	completersCollection  = "completers"
	subscribersCollection = "subscribers"
	foundersCollection    = "founders"
)

type base struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func newBase(db *mongo.Database, name string, timeout time.Duration) base {
	return base{coll: db.Collection(name), timeout: timeout}
}

func (b base) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b base) deleteByID(ctx context.Context, op, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return repository.ErrNotFound
	}
	ctx, cancel := b.ctx(ctx)
	defer cancel()

	res, err := b.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(op, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (b base) replace(ctx context.Context, op string, oid primitive.ObjectID, doc interface{}) error {
	ctx, cancel := b.ctx(ctx)
	defer cancel()

	res, err := b.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return translate(op, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// objectID parses a hex id; malformed ids can never match a document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func creationOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

// EnsureIndexes creates the unique email indexes and the listing indexes. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		subscribersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "subscriptionDate", Value: -1}}},
		},
		challengesCollection: {
			{Keys: bson.D{{Key: "visible", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		completersCollection: {
			{Keys: bson.D{{Key: "visible", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
