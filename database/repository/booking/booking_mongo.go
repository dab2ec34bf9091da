package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	lockColl    *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.Database()
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		lockColl:    db.Collection("employee_locks"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Reschedule(ctx context.Context, id string, start, end time.Time) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"start_time": start,
		"end_time":   end,
		"updated_at": time.Now().UTC(),
	}}
	result, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to reschedule booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

func (r *MongoBookingRepo) TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}}
	result, err := r.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set status of booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) HasCompleted(ctx context.Context, userID, businessID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "business_id": businessID, "status": models.BookingCompleted}
	n, err := r.bookingColl.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return n > 0, nil
}

func (r *MongoBookingRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	filter := bson.M{
		"status":   models.BookingPending,
		"end_time": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingCompleted, "updated_at": now}}
	result, err := r.bookingColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete expired bookings: %w", err)
	}
	return result.ModifiedCount, nil
}
