package booking

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/models"

	"go.uber.org/zap"
)

// ensureFree fails with ErrSlotTaken when candidate overlaps a pending booking
// of the employee other than excludeID. It must run inside WithEmployeeLock.
func (s *DefaultBookingService) ensureFree(ctx context.Context, employeeID string, candidate Interval, excludeID string) error {
	pending, err := s.Bookings.ListPendingForEmployee(ctx, employeeID, candidate.Start, candidate.End())
	if err != nil {
		return fmt.Errorf("failed to load pending bookings: %w", err)
	}
	if conflict := FindConflict(pending, candidate, excludeID); conflict != nil {
		s.logger().Info("Booking conflict",
			zap.String("employeeID", employeeID),
			zap.String("conflictingBookingID", conflict.ID),
			zap.Time("start", candidate.Start),
		)
		return ErrSlotTaken
	}
	return nil
}

// normalizeStart puts a requested start in UTC at storage precision.
func normalizeStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func canAccess(identity models.Identity, booking *models.Booking, business *models.Business) bool {
	if identity.IsZero() {
		return false
	}
	if identity.UserID == booking.UserID {
		return true
	}
	return business != nil && business.ManageableBy(identity)
}

// loadAccessible fetches a booking and checks the caller is its user, the business owner or an admin.
func (s *DefaultBookingService) loadAccessible(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, *models.Business, error) {
	if identity.IsZero() {
		return nil, nil, ErrUnauthenticated
	}
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, ErrBookingNotFound
	}
	business, err := s.Businesses.GetByID(ctx, booking.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if !canAccess(identity, booking, business) {
		return nil, nil, ErrNotAllowed
	}
	return booking, business, nil
}

// CreateBooking books the service at req.DateTime for the caller. The
// employee, business, duration and end time are fixed at this point.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, identity models.Identity, req models.CreateBookingRequest) (*models.Booking, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	svc, employee, business, err := s.resolveService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	duration := svc.Duration()
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	now := s.now()
	start := normalizeStart(req.DateTime)
	if start.Before(now) {
		return nil, ErrStartInPast
	}

	booking := &models.Booking{
		ID:              s.newID(),
		UserID:          identity.UserID,
		ServiceID:       svc.ID,
		EmployeeID:      employee.ID,
		BusinessID:      business.ID,
		StartTime:       start,
		EndTime:         start.Add(duration),
		DurationMinutes: svc.DurationMinutes,
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Bookings.WithEmployeeLock(ctx, employee.ID, func(txCtx context.Context) error {
		if err := s.ensureFree(txCtx, employee.ID, BookingInterval(*booking), ""); err != nil {
			return err
		}
		return s.Bookings.Insert(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("userID", booking.UserID),
		zap.String("employeeID", booking.EmployeeID),
		zap.Time("start", booking.StartTime),
		zap.Time("end", booking.EndTime),
	)
	return booking, nil
}

// UpdateBooking moves a pending booking to newStart, keeping its duration.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, identity models.Identity, bookingID string, newStart time.Time) (*models.Booking, error) {
	booking, _, err := s.loadAccessible(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, ErrNotPending
	}

	svc, err := s.Services.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	employee, err := s.Employees.GetByID(ctx, booking.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	duration := BookingInterval(*booking).Duration
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	now := s.now()
	start := normalizeStart(newStart)
	if start.Before(now) {
		return nil, ErrStartInPast
	}
	candidate := Interval{Start: start, Duration: duration}

	err = s.Bookings.WithEmployeeLock(ctx, employee.ID, func(txCtx context.Context) error {
		current, err := s.Bookings.GetByID(txCtx, booking.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrBookingNotFound
		}
		if current.Status != models.BookingPending {
			return ErrNotPending
		}
		if err := s.ensureFree(txCtx, employee.ID, candidate, booking.ID); err != nil {
			return err
		}
		return s.Bookings.Reschedule(txCtx, booking.ID, candidate.Start, candidate.End())
	})
	if err != nil {
		return nil, err
	}

	previous := booking.StartTime
	booking.StartTime = candidate.Start
	booking.EndTime = candidate.End()
	booking.UpdatedAt = now

	s.logger().Info("Booking rescheduled",
		zap.String("bookingID", booking.ID),
		zap.String("by", identity.UserID),
		zap.Time("from", previous),
		zap.Time("to", booking.StartTime),
	)
	return booking, nil
}

// CancelBooking cancels a pending booking. Cancelling twice is a no-op.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	booking, _, err := s.loadAccessible(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return cancelOutcome(booking)
	}

	// The completion sweep may have moved the booking on since it was read.
	ok, err := s.Bookings.TransitionStatus(ctx, booking.ID, models.BookingPending, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.Bookings.GetByID(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrBookingNotFound
		}
		return cancelOutcome(current)
	}
	booking.Status = models.BookingCancelled
	booking.UpdatedAt = s.now()

	s.logger().Info("Booking cancelled", zap.String("bookingID", booking.ID), zap.String("by", identity.UserID))
	return booking, nil
}

// cancelOutcome answers a cancel request for a booking that is no longer pending.
func cancelOutcome(booking *models.Booking) (*models.Booking, error) {
	switch booking.Status {
	case models.BookingCancelled:
		return booking, nil
	case models.BookingCompleted:
		return nil, ErrAlreadyCompleted
	default:
		return nil, fmt.Errorf("booking %s has unexpected status %q", booking.ID, booking.Status)
	}
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.BookingDetail, error) {
	booking, business, err := s.loadAccessible(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &models.BookingDetail{Booking: *booking}
	if business != nil {
		detail.BusinessName = business.Name
	}
	svc, err := s.Services.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc != nil {
		detail.ServiceName = svc.Name
		detail.Price = svc.Price
	}
	employee, err := s.Employees.GetByID(ctx, booking.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		detail.EmployeeName = employee.Name
	}
	return detail, nil
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.Bookings.ListByUser(ctx, identity.UserID)
}

func (s *DefaultBookingService) ListBusinessBookings(ctx context.Context, identity models.Identity, businessID string) ([]models.Booking, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	business, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	if !business.ManageableBy(identity) {
		return nil, ErrNotAllowed
	}
	return s.Bookings.ListByBusiness(ctx, businessID)
}

// HasCompletedBooking reports whether the caller has had at least one completed booking at the business.
func (s *DefaultBookingService) HasCompletedBooking(ctx context.Context, identity models.Identity, businessID string) (bool, error) {
	if identity.IsZero() {
		return false, ErrUnauthenticated
	}
	return s.Bookings.HasCompleted(ctx, identity.UserID, businessID)
}

// CompleteExpiredBookings marks every pending booking whose end time has passed as completed.
func (s *DefaultBookingService) CompleteExpiredBookings(ctx context.Context) (int64, error) {
	n, err := s.Bookings.CompleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger().Info("Completed expired bookings", zap.Int64("count", n))
	}
	return n, nil
}
