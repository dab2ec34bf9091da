package bookingRepo

import (
	"context"
	"time"

	"bookiteasy/models"
)

// BookingRepository persists bookings. GetByID returns (nil, nil) when missing.
type BookingRepository interface {
	// WithEmployeeLock runs fn so that no other WithEmployeeLock call for the
	// same employee can interleave between fn's reads and its writes. Repository
	// calls made inside fn must use the context fn receives.
	WithEmployeeLock(ctx context.Context, employeeID string, fn func(ctx context.Context) error) error

	// ListPendingForEmployee returns the employee's pending bookings that
	// intersect [from, to), ordered by start time.
	ListPendingForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Booking, error)

	Insert(ctx context.Context, booking *models.Booking) error
	Reschedule(ctx context.Context, id string, start, end time.Time) error
	// TransitionStatus moves the booking from status from to status to. It reports
	// false, without error, when the booking is missing or no longer in from.
	TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error)

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Booking, error)
	HasCompleted(ctx context.Context, userID, businessID string) (bool, error)

	// CompleteExpired marks pending bookings that ended at or before now as completed.
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}
