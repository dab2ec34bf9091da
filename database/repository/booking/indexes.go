package bookingRepo

import (
	"context"
	"fmt"

	"bookiteasy/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on the bookings and employee_locks collections.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), repository.IndexTimeout)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Conflict checks and slot generation.
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("employee_status_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: -1}},
			Options: options.Index().SetName("user_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("business_start_idx"),
		},
		// Completion sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("status_end_idx"),
		},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	lockIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_employee"),
	}
	if _, err := r.lockColl.Indexes().CreateOne(ctx, lockIndex); err != nil {
		return fmt.Errorf("failed to create employee lock index: %w", err)
	}
	return nil
}
