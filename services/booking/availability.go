package booking

import (
	"context"
	"fmt"
	"slices"
	"time"

	"bookiteasy/models"

	"go.uber.org/zap"
)

// resolveService loads a service together with the employee performing it and its business.
func (s *DefaultBookingService) resolveService(ctx context.Context, serviceID string) (*models.Service, *models.Employee, *models.Business, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, nil, nil, err
	}
	if svc == nil {
		return nil, nil, nil, ErrServiceNotFound
	}

	employee, err := s.Employees.GetByID(ctx, svc.EmployeeID)
	if err != nil {
		return nil, nil, nil, err
	}
	if employee == nil {
		return nil, nil, nil, ErrEmployeeNotFound
	}

	business, err := s.Businesses.GetByID(ctx, svc.BusinessID)
	if err != nil {
		return nil, nil, nil, err
	}
	if business == nil {
		return nil, nil, nil, ErrBusinessNotFound
	}
	return svc, employee, business, nil
}

// calendarDay anchors date at midnight of its calendar day in the configured
// weekday zone. In UTC mode the date is converted to UTC first; in business
// mode its calendar fields are read as given and placed in the business timezone.
func (s *DefaultBookingService) calendarDay(date time.Time, business *models.Business) time.Time {
	if s.WeekdayZone == ZoneBusiness {
		y, m, d := date.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, business.Location())
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// alignToGrid rounds t up to the next origin + k*SlotStep.
func alignToGrid(t, origin time.Time) time.Time {
	offset := t.Sub(origin)
	if offset <= 0 {
		return origin
	}
	steps := (offset + SlotStep - 1) / SlotStep
	return origin.Add(steps * SlotStep)
}

const slotDateLayout = "2006-01-02"

func (s *DefaultBookingService) SlotDate(date time.Time) string {
	if s.WeekdayZone == ZoneBusiness {
		return date.Format(slotDateLayout)
	}
	return date.UTC().Format(slotDateLayout)
}

// openingWindow returns the bookable [open, close) of the day, or ok=false when closed.
// open always lies on the slot grid anchored at the business opening time.
func (s *DefaultBookingService) openingWindow(ctx context.Context, business *models.Business, employee *models.Employee, day time.Time) (open, close time.Time, ok bool, err error) {
	weekday := models.DayOfWeekFor(day)

	hours, err := s.WorkingHours.GetForDay(ctx, models.OwnerBusiness, business.ID, weekday)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if hours == nil || hours.Start >= hours.End {
		return time.Time{}, time.Time{}, false, nil
	}
	open, close = hours.Window(day)
	gridOrigin := open

	if s.RespectEmployeeHours {
		own, err := s.WorkingHours.GetForDay(ctx, models.OwnerEmployee, employee.ID, weekday)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		if own != nil {
			ownOpen, ownClose := own.Window(day)
			if ownOpen.After(open) {
				open = ownOpen
			}
			if ownClose.Before(close) {
				close = ownClose
			}
		}
	}
	open = alignToGrid(open, gridOrigin)

	if !open.Before(close) {
		return time.Time{}, time.Time{}, false, nil
	}
	return open, close, true, nil
}

// GetAvailableSlots lists the UTC start times on date at which the service can be booked.
// A day without opening hours yields an empty list.
func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, serviceID string, date time.Time) ([]time.Time, error) {
	svc, employee, business, err := s.resolveService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	duration := svc.Duration()
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	day := s.calendarDay(date, business)
	open, close, ok, err := s.openingWindow(ctx, business, employee, day)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve opening hours: %w", err)
	}
	if !ok {
		return []time.Time{}, nil
	}

	pending, err := s.Bookings.ListPendingForEmployee(ctx, employee.ID, open, close)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending bookings: %w", err)
	}
	busy := make([]Interval, 0, len(pending))
	for _, b := range pending {
		busy = append(busy, BookingInterval(b))
	}

	slots := slices.Collect(SlotSequence(open, close, duration, busy, s.now()))
	for i := range slots {
		slots[i] = slots[i].UTC()
	}
	if slots == nil {
		slots = []time.Time{}
	}

	s.logger().Debug("Computed available slots",
		zap.String("serviceID", serviceID),
		zap.String("employeeID", employee.ID),
		zap.Time("open", open),
		zap.Time("close", close),
		zap.Int("busy", len(busy)),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}
