package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Probe reports whether the backing store answers.
type Probe func(ctx context.Context) error

// PostgresProbe pings the pool.
func PostgresProbe(db *sqlx.DB) Probe {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// MongoProbe pings the primary.
func MongoProbe(client *mongo.Client) Probe {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// AlwaysUp is the probe of the in-process store.
func AlwaysUp(context.Context) error { return nil }
