package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"bookiteasy/models"
)

const (
	testBusinessID = "biz-1"
	testEmployeeID = "emp-1"
	testServiceID  = "svc-1"
	testOwnerID    = "owner-1"
)

var (
	customer = models.Identity{UserID: "user-1", Role: models.RoleUser}
	stranger = models.Identity{UserID: "user-2", Role: models.RoleUser}
	owner    = models.Identity{UserID: testOwnerID, Role: models.RoleOwner}
	admin    = models.Identity{UserID: "admin-1", Role: models.RoleAdmin}
)

type fixture struct {
	svc      *DefaultBookingService
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	hours    *fakeWorkingHoursRepo
}

// newFixture builds a business open Monday 09:00-17:00 UTC with a 60 minute
// service, and a clock set to the Sunday before at()'s Monday.
func newFixture(existing ...models.Booking) *fixture {
	bookings := newFakeBookingRepo(existing...)
	services := &fakeServiceRepo{services: map[string]models.Service{
		testServiceID: {ID: testServiceID, BusinessID: testBusinessID, EmployeeID: testEmployeeID, Name: "Haircut", Price: 50, DurationMinutes: 60},
	}}
	hours := &fakeWorkingHoursRepo{hours: []models.WorkingHours{
		{ID: "wh-1", OwnerType: models.OwnerBusiness, OwnerID: testBusinessID, DayOfWeek: "Monday", Start: 9 * 60, End: 17 * 60},
	}}

	var seq atomic.Int64
	svc := &DefaultBookingService{
		Bookings: bookings,
		Services: services,
		Employees: &fakeEmployeeRepo{employees: map[string]models.Employee{
			testEmployeeID: {ID: testEmployeeID, BusinessID: testBusinessID, Name: "Anna"},
		}},
		Businesses: &fakeBusinessRepo{businesses: map[string]models.Business{
			testBusinessID: {ID: testBusinessID, OwnerID: testOwnerID, Name: "Salon", Timezone: "Europe/Warsaw"},
		}},
		WorkingHours: hours,
		WeekdayZone:  ZoneUTC,
		Now:          func() time.Time { return at(0, 0).Add(-24 * time.Hour) },
		NewID:        func() string { return fmt.Sprintf("bk-%d", seq.Add(1)) },
	}
	return &fixture{svc: svc, bookings: bookings, services: services, hours: hours}
}

func pending(id, userID string, start, end time.Time) models.Booking {
	return models.Booking{
		ID: id, UserID: userID, ServiceID: testServiceID, EmployeeID: testEmployeeID, BusinessID: testBusinessID,
		StartTime: start, EndTime: end, DurationMinutes: int(end.Sub(start) / time.Minute), Status: models.BookingPending,
	}
}

func TestGetAvailableSlotsExcludesPendingBooking(t *testing.T) {
	f := newFixture(pending("existing", "user-9", at(10, 0), at(11, 0)))

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	if len(slots) != 22 {
		t.Fatalf("expected 22 slots, got %d: %v", len(slots), slots)
	}
	if !slots[0].Equal(at(9, 0)) || !slots[1].Equal(at(11, 0)) || !slots[len(slots)-1].Equal(at(16, 0)) {
		t.Fatalf("unexpected slot boundaries: %v", slots)
	}
	for _, s := range slots {
		if s.Location() != time.UTC {
			t.Fatalf("slot %v is not in UTC", s)
		}
	}
}

func TestGetAvailableSlotsIgnoresCancelledBookings(t *testing.T) {
	cancelled := pending("gone", "user-9", at(10, 0), at(11, 0))
	cancelled.Status = models.BookingCancelled
	f := newFixture(cancelled)

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	if len(slots) != 29 {
		t.Fatalf("expected the full 29 slots, got %d", len(slots))
	}
}

func TestGetAvailableSlotsClosedDay(t *testing.T) {
	f := newFixture()
	tuesday := at(0, 0).Add(24 * time.Hour)

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, tuesday)
	if err != nil {
		t.Fatalf("closed day should not be an error, got %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected an empty list, got %#v", slots)
	}
}

func TestGetAvailableSlotsUnknownService(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetAvailableSlots(context.Background(), "missing", at(0, 0))
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestGetAvailableSlotsOmitsPastStartsToday(t *testing.T) {
	f := newFixture()
	f.svc.Now = func() time.Time { return at(15, 10) }

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	want := []time.Time{at(15, 15), at(15, 30), at(15, 45), at(16, 0)}
	if !slices.EqualFunc(slots, want, time.Time.Equal) {
		t.Fatalf("got %v, want %v", slots, want)
	}
}

func TestGetAvailableSlotsRespectsEmployeeHours(t *testing.T) {
	f := newFixture()
	f.svc.RespectEmployeeHours = true
	f.hours.hours = append(f.hours.hours, models.WorkingHours{
		ID: "wh-2", OwnerType: models.OwnerEmployee, OwnerID: testEmployeeID, DayOfWeek: "Monday", Start: 12 * 60, End: 14 * 60,
	})

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	want := []time.Time{at(12, 0), at(12, 15), at(12, 30), at(12, 45), at(13, 0)}
	if !slices.EqualFunc(slots, want, time.Time.Equal) {
		t.Fatalf("got %v, want %v", slots, want)
	}
}

func TestGetAvailableSlotsEmployeeHoursStayOnGrid(t *testing.T) {
	f := newFixture()
	f.svc.RespectEmployeeHours = true
	f.hours.hours = append(f.hours.hours, models.WorkingHours{
		ID: "wh-2", OwnerType: models.OwnerEmployee, OwnerID: testEmployeeID, DayOfWeek: "Monday", Start: 9*60 + 10, End: 11 * 60,
	})

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	want := []time.Time{at(9, 15), at(9, 30), at(9, 45), at(10, 0)}
	if !slices.EqualFunc(slots, want, time.Time.Equal) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for _, s := range slots {
		if s.Sub(at(9, 0))%SlotStep != 0 {
			t.Fatalf("slot %v is off the 15 minute grid", s)
		}
	}
}

func TestGetAvailableSlotsOffGridPendingBooking(t *testing.T) {
	busy := pending("odd", "user-9", at(10, 7), at(10, 52))
	f := newFixture(busy)

	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	if len(slots) != 22 || !slots[0].Equal(at(9, 0)) || !slots[1].Equal(at(11, 0)) {
		t.Fatalf("unexpected slots %v", slots)
	}
	for _, s := range slots {
		if Overlaps(Interval{Start: s, Duration: time.Hour}, BookingInterval(busy)) {
			t.Fatalf("slot %v overlaps the pending booking 10:07-10:52", s)
		}
	}
}

func TestGetAvailableSlotsBusinessZone(t *testing.T) {
	f := newFixture()
	f.svc.WeekdayZone = ZoneBusiness

	// Monday 09:00 in Warsaw (CEST, UTC+2) is 07:00 UTC.
	slots, err := f.svc.GetAvailableSlots(context.Background(), testServiceID, at(0, 0))
	if err != nil {
		t.Fatalf("GetAvailableSlots: %v", err)
	}
	if len(slots) == 0 || !slots[0].Equal(at(7, 0)) {
		t.Fatalf("expected first slot at 07:00 UTC, got %v", slots)
	}
}

func TestSlotDate(t *testing.T) {
	f := newFixture()
	date := time.Date(2030, time.June, 4, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60))

	if got := f.svc.SlotDate(date); got != "2030-06-03" {
		t.Fatalf("utc mode: got %q, want 2030-06-03", got)
	}
	f.svc.WeekdayZone = ZoneBusiness
	if got := f.svc.SlotDate(date); got != "2030-06-04" {
		t.Fatalf("business mode: got %q, want 2030-06-04", got)
	}
}

func TestCreateBookingSnapshotsService(t *testing.T) {
	f := newFixture()

	b, err := f.svc.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(9, 0)})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.Status != models.BookingPending || b.EmployeeID != testEmployeeID || b.BusinessID != testBusinessID {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if !b.EndTime.Equal(at(10, 0)) || b.DurationMinutes != 60 {
		t.Fatalf("expected 60 minute booking ending 10:00, got %+v", b)
	}
	if f.bookings.count() != 1 {
		t.Fatalf("expected one stored booking, got %d", f.bookings.count())
	}
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(pending("existing", "user-9", at(10, 0), at(11, 0)))

	_, err := f.svc.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(10, 30)})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if f.bookings.count() != 1 {
		t.Fatalf("conflicting create must not write, have %d bookings", f.bookings.count())
	}

	if _, err := f.svc.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(11, 0)}); err != nil {
		t.Fatalf("adjacent booking should succeed: %v", err)
	}
}

func TestCreateBookingMissingServiceWritesNothing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ServiceID: "missing", DateTime: at(9, 0)})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if f.bookings.inserts != 0 {
		t.Fatalf("expected no insert, got %d", f.bookings.inserts)
	}
}

func TestCreateBookingInThePast(t *testing.T) {
	f := newFixture()
	f.svc.Now = func() time.Time { return at(12, 0) }

	_, err := f.svc.CreateBooking(context.Background(), customer, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(9, 0)})
	if !errors.Is(err, ErrStartInPast) {
		t.Fatalf("expected ErrStartInPast, got %v", err)
	}
}

func TestCreateBookingRequiresIdentity(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateBooking(context.Background(), models.Identity{}, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(9, 0)})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestConcurrentCreatesOnlyOneWins(t *testing.T) {
	f := newFixture()
	const callers = 16

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
		others    = make(chan error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			who := models.Identity{UserID: fmt.Sprintf("user-%d", i), Role: models.RoleUser}
			_, err := f.svc.CreateBooking(context.Background(), who, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(10, 0)})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrSlotTaken):
				conflicts.Add(1)
			default:
				others <- err
			}
		}(i)
	}
	wg.Wait()
	close(others)

	for err := range others {
		t.Fatalf("unexpected error: %v", err)
	}
	if successes.Load() != 1 || conflicts.Load() != callers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", callers-1, successes.Load(), conflicts.Load())
	}
	if f.bookings.count() != 1 {
		t.Fatalf("expected exactly one stored booking, got %d", f.bookings.count())
	}
}

func TestUpdateBookingExcludesItself(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))

	b, err := f.svc.UpdateBooking(context.Background(), customer, "mine", at(10, 30))
	if err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	if !b.StartTime.Equal(at(10, 30)) || !b.EndTime.Equal(at(11, 30)) {
		t.Fatalf("unexpected times: %v - %v", b.StartTime, b.EndTime)
	}
	stored, _ := f.bookings.GetByID(context.Background(), "mine")
	if !stored.StartTime.Equal(at(10, 30)) {
		t.Fatalf("reschedule not persisted: %+v", stored)
	}
}

func TestUpdateBookingKeepsDurationSnapshot(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(10, 30)))
	svc := f.services.services[testServiceID]
	svc.DurationMinutes = 120
	f.services.services[testServiceID] = svc

	b, err := f.svc.UpdateBooking(context.Background(), customer, "mine", at(13, 0))
	if err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	if !b.EndTime.Equal(at(13, 30)) {
		t.Fatalf("expected the 30 minute snapshot to be kept, end = %v", b.EndTime)
	}
}

func TestUpdateBookingConflictWithOther(t *testing.T) {
	f := newFixture(
		pending("mine", customer.UserID, at(9, 0), at(10, 0)),
		pending("theirs", "user-9", at(12, 0), at(13, 0)),
	)

	_, err := f.svc.UpdateBooking(context.Background(), customer, "mine", at(12, 30))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	stored, _ := f.bookings.GetByID(context.Background(), "mine")
	if !stored.StartTime.Equal(at(9, 0)) {
		t.Fatalf("failed update must not move the booking: %+v", stored)
	}
}

func TestUpdateBookingAuthorization(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))

	if _, err := f.svc.UpdateBooking(context.Background(), stranger, "mine", at(14, 0)); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for stranger, got %v", err)
	}
	if _, err := f.svc.UpdateBooking(context.Background(), owner, "mine", at(14, 0)); err != nil {
		t.Fatalf("business owner should be allowed: %v", err)
	}
	if _, err := f.svc.UpdateBooking(context.Background(), admin, "mine", at(15, 0)); err != nil {
		t.Fatalf("admin should be allowed: %v", err)
	}
	if _, err := f.svc.UpdateBooking(context.Background(), customer, "missing", at(15, 0)); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))
	ctx := context.Background()

	b, err := f.svc.CancelBooking(ctx, customer, "mine")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if b.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}
	if _, err := f.svc.CancelBooking(ctx, customer, "mine"); err != nil {
		t.Fatalf("second cancel should be a no-op, got %v", err)
	}
	if _, err := f.svc.UpdateBooking(ctx, customer, "mine", at(12, 0)); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}

	// The freed time can be booked again.
	if _, err := f.svc.CreateBooking(ctx, stranger, models.CreateBookingRequest{ServiceID: testServiceID, DateTime: at(10, 0)}); err != nil {
		t.Fatalf("slot should be free after cancel: %v", err)
	}
}

func TestCancelCompletedBooking(t *testing.T) {
	done := pending("done", customer.UserID, at(10, 0), at(11, 0))
	done.Status = models.BookingCompleted
	f := newFixture(done)

	if _, err := f.svc.CancelBooking(context.Background(), customer, "done"); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

// sweepAfterReadRepo completes expired bookings right after the first read,
// as the completion sweep would if it ran between a read and a write.
type sweepAfterReadRepo struct {
	*fakeBookingRepo
	now   time.Time
	swept bool
}

func (r *sweepAfterReadRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := r.fakeBookingRepo.GetByID(ctx, id)
	if !r.swept {
		r.swept = true
		if _, err := r.fakeBookingRepo.CompleteExpired(ctx, r.now); err != nil {
			return nil, err
		}
	}
	return b, err
}

func TestCancelBookingCompletedConcurrently(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))
	f.svc.Bookings = &sweepAfterReadRepo{fakeBookingRepo: f.bookings, now: at(12, 0)}

	if _, err := f.svc.CancelBooking(context.Background(), customer, "mine"); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	b, _ := f.bookings.GetByID(context.Background(), "mine")
	if b.Status != models.BookingCompleted {
		t.Fatalf("completed booking was overwritten with %s", b.Status)
	}
}

func TestGetBookingDetail(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))

	detail, err := f.svc.GetBooking(context.Background(), customer, "mine")
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if detail.ServiceName != "Haircut" || detail.EmployeeName != "Anna" || detail.BusinessName != "Salon" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if _, err := f.svc.GetBooking(context.Background(), stranger, "mine"); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestListBusinessBookingsRequiresOwner(t *testing.T) {
	f := newFixture(pending("mine", customer.UserID, at(10, 0), at(11, 0)))

	if _, err := f.svc.ListBusinessBookings(context.Background(), customer, testBusinessID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
	list, err := f.svc.ListBusinessBookings(context.Background(), owner, testBusinessID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one booking for owner, got %v (%v)", list, err)
	}
}

func TestCompleteExpiredBookings(t *testing.T) {
	f := newFixture(
		pending("past", customer.UserID, at(9, 0), at(10, 0)),
		pending("future", customer.UserID, at(15, 0), at(16, 0)),
	)
	f.svc.Now = func() time.Time { return at(12, 0) }

	n, err := f.svc.CompleteExpiredBookings(context.Background())
	if err != nil {
		t.Fatalf("CompleteExpiredBookings: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 completed booking, got %d", n)
	}
	ok, _ := f.svc.HasCompletedBooking(context.Background(), customer, testBusinessID)
	if !ok {
		t.Fatalf("expected the customer to have a completed booking")
	}
	future, _ := f.bookings.GetByID(context.Background(), "future")
	if future.Status != models.BookingPending {
		t.Fatalf("future booking must stay pending, got %s", future.Status)
	}
}
