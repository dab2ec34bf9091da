package offeringRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceRepository persists the bookable services of a business.
// GetByID returns (nil, nil) when missing.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	CountByBusiness(ctx context.Context, businessID string) (int64, error)
	CountByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{coll: database.Database().Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service indexes: %v\n", err)
	}
	return repo
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "business_id", Value: 1}}, Options: options.Index().SetName("business_idx")},
		{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().SetName("employee_idx")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func (r *MongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &service, nil
}

// ListByBusiness returns featured services first, then by name.
func (r *MongoServiceRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Service, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "is_featured", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services of business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, cursor.Err()
}

func (r *MongoServiceRepo) Update(ctx context.Context, service *models.Service) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	service.UpdatedAt = time.Now().UTC()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": service.ID}, service)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", service.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", service.ID)
	}
	return nil
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	return nil
}

func (r *MongoServiceRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	return r.count(ctx, bson.M{"business_id": businessID})
}

func (r *MongoServiceRepo) CountByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.count(ctx, bson.M{"employee_id": employeeID})
}

func (r *MongoServiceRepo) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}
