package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// ensureLockDocument creates the employee's lock document outside of any
// transaction, so concurrent first bookings contend on an update rather than an insert.
func (r *MongoBookingRepo) ensureLockDocument(ctx context.Context, employeeID string) error {
	ctx, cancel := repository.NewContext(ctx, repository.QueryTimeout)
	defer cancel()

	filter := bson.M{"employee_id": employeeID}
	update := bson.M{"$setOnInsert": bson.M{"employee_id": employeeID, "version": int64(0)}}
	opts := options.Update().SetUpsert(true)

	_, err := r.lockColl.UpdateOne(ctx, filter, update, opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Lost the upsert race; the document exists now.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to prepare lock for employee %s: %w", employeeID, err)
	}
	return nil
}

// WithEmployeeLock runs fn inside a snapshot transaction that first bumps the
// employee's lock document. Two transactions for the same employee write-conflict
// on that document; the driver aborts and retries the loser, whose retried fn
// then observes the winner's committed writes.
func (r *MongoBookingRepo) WithEmployeeLock(ctx context.Context, employeeID string, fn func(ctx context.Context) error) error {
	if err := r.ensureLockDocument(ctx, employeeID); err != nil {
		return err
	}

	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		lockUpdate := bson.M{
			"$inc": bson.M{"version": int64(1)},
			"$set": bson.M{"locked_at": time.Now().UTC()},
		}
		if _, err := r.lockColl.UpdateOne(sc, bson.M{"employee_id": employeeID}, lockUpdate); err != nil {
			return nil, err
		}
		return nil, fn(sc)
	}, txnOpts)
	return err
}
