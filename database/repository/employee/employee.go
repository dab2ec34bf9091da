package employeeRepo

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

// EmployeeRepository persists the employees of a business. GetByID returns (nil, nil) when missing.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id string) error
	CountByBusiness(ctx context.Context, businessID string) (int64, error)
}

type MongoEmployeeRepo struct {
	coll *mongo.Collection
}

func NewMongoEmployeeRepo() EmployeeRepository {
	repo := &MongoEmployeeRepo{coll: database.Database().Collection("employees")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create employee indexes: %v\n", err)
	}
	return repo
}

func (r *MongoEmployeeRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetName("business_name_idx")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func (r *MongoEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *MongoEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	var employee models.Employee
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch employee with id %s: %w", id, err)
	}
	return &employee, nil
}

func (r *MongoEmployeeRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Employee, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

func (r *MongoEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	employee.UpdatedAt = time.Now().UTC()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": employee.ID}, employee)
	if err != nil {
		return fmt.Errorf("failed to update employee with id %s: %w", employee.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("employee with id %s not found", employee.ID)
	}
	return nil
}

func (r *MongoEmployeeRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	return nil
}

func (r *MongoEmployeeRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"business_id": businessID})
	if err != nil {
		return 0, fmt.Errorf("failed to count employees of business %s: %w", businessID, err)
	}
	return n, nil
}
