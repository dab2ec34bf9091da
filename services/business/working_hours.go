package business

import (
	"context"
	"errors"
	"sort"
	"time"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.uber.org/zap"
)

var weekdayOrder = map[models.DayOfWeek]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3, "Friday": 4, "Saturday": 5, "Sunday": 6,
}

func sortedByDay(hours []models.WorkingHours) []models.WorkingHours {
	sort.SliceStable(hours, func(i, j int) bool {
		return weekdayOrder[hours[i].DayOfWeek] < weekdayOrder[hours[j].DayOfWeek]
	})
	if hours == nil {
		return []models.WorkingHours{}
	}
	return hours
}

// parseWeek validates a replace-all request: one window per day, start before end.
func (s *DefaultBusinessService) parseWeek(ownerType models.OwnerType, ownerID string, req models.SetWorkingHoursRequest) ([]models.WorkingHours, error) {
	seen := make(map[models.DayOfWeek]bool, len(req.WorkingHours))
	hours := make([]models.WorkingHours, 0, len(req.WorkingHours))
	for _, in := range req.WorkingHours {
		day, ok := models.ParseDayOfWeek(in.DayOfWeek)
		if !ok {
			return nil, ErrInvalidDay
		}
		if seen[day] {
			return nil, ErrDuplicateDay
		}
		seen[day] = true

		start, err := models.ParseClock(in.Start)
		if err != nil {
			return nil, ErrInvalidClock
		}
		end, err := models.ParseClock(in.End)
		if err != nil {
			return nil, ErrInvalidClock
		}
		if start >= end {
			return nil, ErrInvalidHours
		}
		hours = append(hours, models.WorkingHours{
			ID:        s.newID(),
			OwnerType: ownerType,
			OwnerID:   ownerID,
			DayOfWeek: day,
			Start:     start,
			End:       end,
		})
	}
	return sortedByDay(hours), nil
}

func (s *DefaultBusinessService) replaceHours(ctx context.Context, ownerType models.OwnerType, ownerID string, hours []models.WorkingHours) error {
	if err := s.WorkingHours.ReplaceForOwner(ctx, ownerType, ownerID, hours); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateDay
		}
		return err
	}
	return nil
}

// SetBusinessHours replaces the whole week of the business. Clearing it unpublishes the business.
func (s *DefaultBusinessService) SetBusinessHours(ctx context.Context, identity models.Identity, businessID string, req models.SetWorkingHoursRequest) ([]models.WorkingHours, *models.PublishStatus, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, nil, err
	}
	hours, err := s.parseWeek(models.OwnerBusiness, business.ID, req)
	if err != nil {
		return nil, nil, err
	}
	if err := s.replaceHours(ctx, models.OwnerBusiness, business.ID, hours); err != nil {
		return nil, nil, err
	}

	status, err := s.revalidate(ctx, business.ID)
	if err != nil {
		return nil, nil, err
	}
	s.logger().Info("Business hours replaced", zap.String("businessID", business.ID), zap.Int("days", len(hours)))
	return hours, status, nil
}

func (s *DefaultBusinessService) GetBusinessHours(ctx context.Context, businessID string) ([]models.WorkingHours, error) {
	if _, err := s.loadBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	hours, err := s.WorkingHours.ListForOwner(ctx, models.OwnerBusiness, businessID)
	if err != nil {
		return nil, err
	}
	return sortedByDay(hours), nil
}

func (s *DefaultBusinessService) SetEmployeeHours(ctx context.Context, identity models.Identity, businessID, employeeID string, req models.SetWorkingHoursRequest) ([]models.WorkingHours, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	employee, err := s.loadEmployee(ctx, business.ID, employeeID)
	if err != nil {
		return nil, err
	}
	hours, err := s.parseWeek(models.OwnerEmployee, employee.ID, req)
	if err != nil {
		return nil, err
	}
	if err := s.replaceHours(ctx, models.OwnerEmployee, employee.ID, hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func (s *DefaultBusinessService) GetEmployeeHours(ctx context.Context, businessID, employeeID string) ([]models.WorkingHours, error) {
	employee, err := s.loadEmployee(ctx, businessID, employeeID)
	if err != nil {
		return nil, err
	}
	hours, err := s.WorkingHours.ListForOwner(ctx, models.OwnerEmployee, employee.ID)
	if err != nil {
		return nil, err
	}
	return sortedByDay(hours), nil
}

// stamp sets CreatedAt on first write and UpdatedAt always.
func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
