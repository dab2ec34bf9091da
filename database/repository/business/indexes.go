package businessRepo

import (
	"context"
	"fmt"

	"bookiteasy/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes of the businesses collection.
func (r *MongoBusinessRepo) EnsureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One business per owner.
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_owner"),
		},
		{
			Keys:    bson.D{{Key: "is_published", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("published_name_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create business indexes: %w", err)
	}
	return nil
}
