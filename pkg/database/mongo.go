package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/startupathon-api/pkg/config"
)

// NewMongo connects to the document store and verifies the primary is reachable.
// connectTimeout bounds both server selection and the initial dial.
func NewMongo(ctx context.Context, cfg config.MongoConfig, connectTimeout time.Duration, maxPool int) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI).SetAppName("startupathon-api")
	if connectTimeout > 0 {
		opts.SetServerSelectionTimeout(connectTimeout).SetConnectTimeout(connectTimeout)
	}
	if maxPool > 0 {
		opts.SetMaxPoolSize(uint64(maxPool))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := withTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
