package booking

import (
	"context"
	"time"

	bookingRepo "bookiteasy/database/repository/booking"
	businessRepo "bookiteasy/database/repository/business"
	employeeRepo "bookiteasy/database/repository/employee"
	offeringRepo "bookiteasy/database/repository/offering"
	workingHoursRepo "bookiteasy/database/repository/workinghours"
	"bookiteasy/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the availability engine plus the booking lifecycle.
type BookingService interface {
	GetAvailableSlots(ctx context.Context, serviceID string, date time.Time) ([]time.Time, error)
	// SlotDate is the YYYY-MM-DD calendar day GetAvailableSlots looks up for date.
	SlotDate(date time.Time) string
	CreateBooking(ctx context.Context, identity models.Identity, req models.CreateBookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, identity models.Identity, bookingID string, newStart time.Time) (*models.Booking, error)
	CancelBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.BookingDetail, error)
	ListUserBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error)
	ListBusinessBookings(ctx context.Context, identity models.Identity, businessID string) ([]models.Booking, error)
	HasCompletedBooking(ctx context.Context, identity models.Identity, businessID string) (bool, error)
	CompleteExpiredBookings(ctx context.Context) (int64, error)
}

// WeekdayZone selects the timezone in which a requested date is mapped to a weekday.
type WeekdayZone string

const (
	ZoneUTC      WeekdayZone = "utc"
	ZoneBusiness WeekdayZone = "business"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings     bookingRepo.BookingRepository
	Services     offeringRepo.ServiceRepository
	Employees    employeeRepo.EmployeeRepository
	Businesses   businessRepo.BusinessRepository
	WorkingHours workingHoursRepo.WorkingHoursRepository
	Logger       *zap.Logger

	WeekdayZone WeekdayZone
	// RespectEmployeeHours narrows the business window to the employee's own
	// hours on days where the employee has a record.
	RespectEmployeeHours bool

	// Now and NewID default to the wall clock and random UUIDs.
	Now   func() time.Time
	NewID func() string
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultBookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
