package businessRepo

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoBusinessRepo) AddImage(ctx context.Context, businessID string, image models.BusinessImage) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"images": image},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": businessID}, update)
	if err != nil {
		return fmt.Errorf("failed to add image to business %s: %w", businessID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("business with id %s not found", businessID)
	}
	return nil
}

// SetPrimaryImage flags imageID as primary and clears the flag on every other image.
func (r *MongoBusinessRepo) SetPrimaryImage(ctx context.Context, businessID, imageID string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "images", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$images"},
				{Key: "as", Value: "img"},
				{Key: "in", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
					"$$img",
					bson.D{{Key: "is_primary", Value: bson.D{{Key: "$eq", Value: bson.A{"$$img.id", imageID}}}}},
				}}}},
			}}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}

	filter := bson.M{"id": businessID, "images.id": imageID}
	result, err := r.coll.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return fmt.Errorf("failed to set primary image of business %s: %w", businessID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("image %s not found on business %s", imageID, businessID)
	}
	return nil
}

func (r *MongoBusinessRepo) RemoveImage(ctx context.Context, businessID, imageID string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"images": bson.M{"id": imageID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": businessID}, update); err != nil {
		return fmt.Errorf("failed to remove image %s from business %s: %w", imageID, businessID, err)
	}
	return nil
}
