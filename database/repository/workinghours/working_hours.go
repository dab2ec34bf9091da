package workingHoursRepo

import (
	"context"
	"errors"
	"fmt"

	"bookiteasy/database"
	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkingHoursRepository stores at most one record per owner and weekday.
type WorkingHoursRepository interface {
	// GetForDay returns (nil, nil) when the owner has no hours on day.
	GetForDay(ctx context.Context, ownerType models.OwnerType, ownerID string, day models.DayOfWeek) (*models.WorkingHours, error)
	ListForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) ([]models.WorkingHours, error)
	// ReplaceForOwner atomically swaps the owner's whole week for hours.
	ReplaceForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string, hours []models.WorkingHours) error
	CountForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error)
}

type MongoWorkingHoursRepo struct {
	coll *mongo.Collection
}

func NewMongoWorkingHoursRepo() WorkingHoursRepository {
	repo := &MongoWorkingHoursRepo{coll: database.Database().Collection("working_hours")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create working hours indexes: %v\n", err)
	}
	return repo
}

func (r *MongoWorkingHoursRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{
			Keys:    bson.D{{Key: "owner_type", Value: 1}, {Key: "owner_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_owner_day"),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func ownerFilter(ownerType models.OwnerType, ownerID string) bson.M {
	return bson.M{"owner_type": ownerType, "owner_id": ownerID}
}

func (r *MongoWorkingHoursRepo) GetForDay(ctx context.Context, ownerType models.OwnerType, ownerID string, day models.DayOfWeek) (*models.WorkingHours, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	filter := ownerFilter(ownerType, ownerID)
	filter["day_of_week"] = day

	var hours models.WorkingHours
	if err := r.coll.FindOne(ctx, filter).Decode(&hours); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch working hours of %s %s on %s: %w", ownerType, ownerID, day, err)
	}
	return &hours, nil
}

func (r *MongoWorkingHoursRepo) ListForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) ([]models.WorkingHours, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, ownerFilter(ownerType, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours of %s %s: %w", ownerType, ownerID, err)
	}
	defer cursor.Close(ctx)

	hours := []models.WorkingHours{}
	if err := cursor.All(ctx, &hours); err != nil {
		return nil, fmt.Errorf("failed to decode working hours: %w", err)
	}
	return hours, nil
}

func (r *MongoWorkingHoursRepo) ReplaceForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string, hours []models.WorkingHours) error {
	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.DeleteMany(sc, ownerFilter(ownerType, ownerID)); err != nil {
			return nil, fmt.Errorf("failed to clear working hours: %w", err)
		}
		if len(hours) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, 0, len(hours))
		for _, h := range hours {
			docs = append(docs, h)
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, repository.ErrDuplicate
			}
			return nil, fmt.Errorf("failed to insert working hours: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *MongoWorkingHoursRepo) CountForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, ownerFilter(ownerType, ownerID))
	if err != nil {
		return 0, fmt.Errorf("failed to count working hours of %s %s: %w", ownerType, ownerID, err)
	}
	return n, nil
}
