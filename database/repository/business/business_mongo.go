package businessRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookiteasy/database"
	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo creates a new instance of BusinessRepository using MongoDB.
func NewMongoBusinessRepo() BusinessRepository {
	repo := &MongoBusinessRepo{coll: database.Database().Collection("businesses")}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create business indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBusinessRepo) Create(ctx context.Context, business *models.Business) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	now := time.Now().UTC()
	business.CreatedAt = now
	business.UpdatedAt = now
	if business.Images == nil {
		business.Images = []models.BusinessImage{}
	}

	if _, err := r.coll.InsertOne(ctx, business); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *MongoBusinessRepo) findOne(ctx context.Context, filter bson.M) (*models.Business, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, filter).Decode(&business); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	business, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business with id %s: %w", id, err)
	}
	return business, nil
}

func (r *MongoBusinessRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Business, error) {
	business, err := r.findOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business of owner %s: %w", ownerID, err)
	}
	return business, nil
}

// Update writes the profile fields. Images and publication state have dedicated methods.
func (r *MongoBusinessRepo) Update(ctx context.Context, business *models.Business) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	business.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":                business.Name,
		"description":         business.Description,
		"category":            business.Category,
		"email":               business.Email,
		"phone":               business.Phone,
		"tax_id":              business.TaxID,
		"registration_number": business.RegistrationNumber,
		"address":             business.Address,
		"timezone":            business.Timezone,
		"updated_at":          business.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": business.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update business with id %s: %w", business.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("business with id %s not found", business.ID)
	}
	return nil
}

func (r *MongoBusinessRepo) SetPublished(ctx context.Context, id string, published bool) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_published": published, "updated_at": time.Now().UTC()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to set publication of business %s: %w", id, err)
	}
	return nil
}
