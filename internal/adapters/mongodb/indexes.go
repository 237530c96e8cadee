package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths rely on. Safe to call on
// every startup; existing indexes are left alone.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type indexSet struct {
		collection string
		models     []mongo.IndexModel
	}

	sets := []indexSet{
		{
			collection: accountsCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "cycleId", Value: 1}}},
				{Keys: bson.D{{Key: "kycId", Value: 1}}},
				{Keys: bson.D{{Key: "status", Value: 1}}},
				{Keys: bson.D{{Key: "cycleId", Value: 1}, {Key: "phase", Value: 1}}},
			},
		},
		{
			collection: payoutsCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "kycId", Value: 1}}},
			},
		},
		{
			collection: tirosCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "cycleId", Value: 1}}},
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
		{
			collection: cyclesCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
		{
			collection: kycsCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "name", Value: 1}}},
			},
		},
		{
			collection: investorsCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			collection: usersCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
	}

	for _, set := range sets {
		if _, err := s.db.Collection(set.collection).Indexes().CreateMany(ctx, set.models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", set.collection, err)
		}
	}

	s.logger.Info(ctx, "Database indexes initialized")
	return nil
}
