package userRepo

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddFavorite is idempotent.
func (r *MongoUserRepo) AddFavorite(ctx context.Context, userID, businessID string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "business_id": businessID}
	update := bson.M{"$setOnInsert": models.Favorite{UserID: userID, BusinessID: businessID, CreatedAt: time.Now().UTC()}}
	if _, err := r.favoriteColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) RemoveFavorite(ctx context.Context, userID, businessID string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.favoriteColl.DeleteOne(ctx, bson.M{"user_id": userID, "business_id": businessID}); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) IsFavorite(ctx context.Context, userID, businessID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	n, err := r.favoriteColl.CountDocuments(ctx, bson.M{"user_id": userID, "business_id": businessID})
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// ListFavoriteBusinessIDs returns the most recently favorited businesses first.
func (r *MongoUserRepo) ListFavoriteBusinessIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.favoriteColl.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites of user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var f models.Favorite
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode favorite: %w", err)
		}
		ids = append(ids, f.BusinessID)
	}
	return ids, cursor.Err()
}
