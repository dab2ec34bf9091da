package reviewRepo

import (
	"context"
	"fmt"

	"bookiteasy/database"
	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository stores one review per user and business.
type ReviewRepository interface {
	// Create yields repository.ErrDuplicate when the user already reviewed the business.
	Create(ctx context.Context, review *models.Review) error
	ListByBusiness(ctx context.Context, businessID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	Exists(ctx context.Context, userID, businessID string) (bool, error)
}

type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Database().Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{
			Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_business_user"),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("user_idx")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Review, error) {
	reviews, err := r.list(ctx, bson.M{"business_id": businessID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of business %s: %w", businessID, err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	reviews, err := r.list(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of user %s: %w", userID, err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) Exists(ctx context.Context, userID, businessID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "business_id": businessID})
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return n > 0, nil
}
