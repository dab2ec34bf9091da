package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, repository.IndexTimeout)
	defer cancel()

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListPendingForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"status":      models.BookingPending,
		"start_time":  bson.M{"$lt": to},
		"end_time":    bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	bookings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bookings of employee %s: %w", employeeID, err)
	}
	return bookings, nil
}

// ListByUser returns the user's bookings, most recent first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	bookings, err := r.find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of user %s: %w", userID, err)
	}
	return bookings, nil
}

// ListByBusiness returns the business's bookings in chronological order.
func (r *MongoBookingRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	bookings, err := r.find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of business %s: %w", businessID, err)
	}
	return bookings, nil
}
