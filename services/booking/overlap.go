package booking

import (
	"time"

	"bookiteasy/models"
)

// Interval is the half-open time range [Start, Start+Duration).
type Interval struct {
	Start    time.Time
	Duration time.Duration
}

func (i Interval) End() time.Time {
	return i.Start.Add(i.Duration)
}

// Overlaps reports whether a and b share any instant. Touching intervals do not
// overlap, and an interval with a non-positive duration overlaps nothing.
func Overlaps(a, b Interval) bool {
	if a.Duration <= 0 || b.Duration <= 0 {
		return false
	}
	return a.Start.Before(b.End()) && b.Start.Before(a.End())
}

// BookingInterval is the time a booking occupies, using its stored end time.
func BookingInterval(b models.Booking) Interval {
	return Interval{Start: b.StartTime, Duration: b.EndTime.Sub(b.StartTime)}
}

// FindConflict returns the first pending booking, other than excludeID, that
// overlaps candidate, or nil.
func FindConflict(bookings []models.Booking, candidate Interval, excludeID string) *models.Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.BookingPending || (excludeID != "" && b.ID == excludeID) {
			continue
		}
		if Overlaps(BookingInterval(*b), candidate) {
			return b
		}
	}
	return nil
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}
