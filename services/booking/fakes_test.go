package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	businessRepo "bookiteasy/database/repository/business"
	"bookiteasy/models"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	bookings map[string]models.Booking
	inserts  int
}

func newFakeBookingRepo(existing ...models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{locks: map[string]*sync.Mutex{}, bookings: map[string]models.Booking{}}
	for _, b := range existing {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) WithEmployeeLock(ctx context.Context, employeeID string, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	l, ok := r.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[employeeID] = l
	}
	r.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}

func (r *fakeBookingRepo) ListPendingForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.EmployeeID == employeeID && b.Status == models.BookingPending && b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = *booking
	r.inserts++
	return nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, id string, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[id]
	b.StartTime, b.EndTime = start, end
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) TransitionStatus(_ context.Context, id string, from, to models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	r.bookings[id] = b
	return true, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) HasCompleted(_ context.Context, userID, businessID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.BusinessID == businessID && b.Status == models.BookingCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CompleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.bookings {
		if b.Status == models.BookingPending && !b.EndTime.After(now) {
			b.Status = models.BookingCompleted
			r.bookings[id] = b
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeServiceRepo struct{ services map[string]models.Service }

func (r *fakeServiceRepo) Create(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeServiceRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	list, _ := r.ListByBusiness(ctx, businessID)
	return int64(len(list)), nil
}

func (r *fakeServiceRepo) CountByEmployee(_ context.Context, employeeID string) (int64, error) {
	var n int64
	for _, s := range r.services {
		if s.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct{ employees map[string]models.Employee }

func (r *fakeEmployeeRepo) Create(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*models.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range r.employees {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	list, _ := r.ListByBusiness(ctx, businessID)
	return int64(len(list)), nil
}

type fakeBusinessRepo struct{ businesses map[string]models.Business }

func (r *fakeBusinessRepo) Create(_ context.Context, b *models.Business) error {
	r.businesses[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id string) (*models.Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBusinessRepo) GetByOwner(_ context.Context, ownerID string) (*models.Business, error) {
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *models.Business) error {
	r.businesses[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) SetPublished(_ context.Context, id string, published bool) error {
	b := r.businesses[id]
	b.IsPublished = published
	r.businesses[id] = b
	return nil
}

func (r *fakeBusinessRepo) SearchPublished(context.Context, businessRepo.SearchCriteria) ([]models.Business, int64, error) {
	return nil, 0, nil
}

func (r *fakeBusinessRepo) AddImage(context.Context, string, models.BusinessImage) error { return nil }
func (r *fakeBusinessRepo) SetPrimaryImage(context.Context, string, string) error        { return nil }
func (r *fakeBusinessRepo) RemoveImage(context.Context, string, string) error            { return nil }

type fakeWorkingHoursRepo struct{ hours []models.WorkingHours }

func (r *fakeWorkingHoursRepo) GetForDay(_ context.Context, ownerType models.OwnerType, ownerID string, day models.DayOfWeek) (*models.WorkingHours, error) {
	for _, h := range r.hours {
		if h.OwnerType == ownerType && h.OwnerID == ownerID && h.DayOfWeek == day {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkingHoursRepo) ListForOwner(_ context.Context, ownerType models.OwnerType, ownerID string) ([]models.WorkingHours, error) {
	var out []models.WorkingHours
	for _, h := range r.hours {
		if h.OwnerType == ownerType && h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeWorkingHoursRepo) ReplaceForOwner(_ context.Context, ownerType models.OwnerType, ownerID string, hours []models.WorkingHours) error {
	kept := r.hours[:0]
	for _, h := range r.hours {
		if h.OwnerType != ownerType || h.OwnerID != ownerID {
			kept = append(kept, h)
		}
	}
	r.hours = append(kept, hours...)
	return nil
}

func (r *fakeWorkingHoursRepo) CountForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error) {
	list, _ := r.ListForOwner(ctx, ownerType, ownerID)
	return int64(len(list)), nil
}
