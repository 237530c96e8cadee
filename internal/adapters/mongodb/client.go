// Package mongodb implements the repository ports on a MongoDB database.
//
// The collections predate this service: stored documents keep their original
// camelCase field names, and tiro legs may still carry the legacy flat shape
// that legToDomain upgrades on every read.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gtfunds/internal/ports"
)

// Collection names, shared with the pre-existing database.
const (
	cyclesCollection    = "cycles"
	tirosCollection     = "tiros"
	accountsCollection  = "trading_accounts"
	kycsCollection      = "kycs"
	payoutsCollection   = "payouts"
	investorsCollection = "investors"
	clientsCollection   = "clients"
	usersCollection     = "users"
)

// Store holds the pooled connection shared by all repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger ports.Logger
}

// Config holds configuration for the MongoDB store.
type Config struct {
	URI            string
	Database       string
	Logger         ports.Logger
	ConnectTimeout time.Duration
}

// Connect establishes and verifies the database connection.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for MongoDB store")
	}
	if cfg.URI == "" || cfg.Database == "" {
		return nil, fmt.Errorf("MongoDB URI and database name are required")
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		err = fmt.Errorf("failed to connect to MongoDB at %q: %w", cfg.URI, err)
		cfg.Logger.Error(ctx, err, "MongoDB store initialization failed")
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		err = fmt.Errorf("failed to ping MongoDB at %q: %w", cfg.URI, err)
		cfg.Logger.Error(ctx, err, "MongoDB store initialization failed")
		return nil, err
	}

	cfg.Logger.Info(ctx, "MongoDB connection established", map[string]interface{}{"database": cfg.Database})

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		logger: cfg.Logger,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// objectID parses a store identifier, wrapping malformed values in
// ports.ErrInvalidID. This is the well-formedness predicate of the store:
// it says nothing about existence.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ports.ErrInvalidID, id)
	}
	return oid, nil
}
